// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package compiler

import (
	"focusmcp/internal/locator"
	"focusmcp/internal/omnifocus"
	"focusmcp/internal/script"
)

// Markers of the records emitted by FolderDetails.
const (
	DetailFolder    = "folder"
	DetailProject   = "project"
	DetailSubfolder = "subfolder"
)

// FolderDetails emits a folder record (name, id, path), one project record
// per direct project (name, status, incomplete count) and one subfolder
// record per direct subfolder (name, project count).
func FolderDetails(a *omnifocus.FolderRefArgs) (*script.Program, error) {
	folder := script.Ident(folderVar)
	project := script.Ident("eachProject")
	sub := script.Ident("eachSubfolder")

	p := script.New(resolve(locator.KindFolder, a.FolderName, folderVar)...)
	p.Add(containerPath(folder)...)
	p.Add(
		emit(script.Str(DetailFolder), text("name", folder), text("id", folder), script.Ident(pathVar)),
		script.Repeat{Var: string(project), In: script.Of("projects", folder), Body: []script.Stmt{
			emit(
				script.Str(DetailProject),
				text("name", project),
				script.Coerce(script.Of("status", project)),
				script.AsText(script.Count(every("flattened task", project, "completed is false"))),
			),
		}},
		script.Repeat{Var: string(sub), In: script.Of("folders", folder), Body: []script.Stmt{
			emit(
				script.Str(DetailSubfolder),
				text("name", sub),
				script.AsText(script.Count(script.Of("projects", sub))),
			),
		}},
		finish(),
	)
	return p, nil
}
