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

package omnifocus

// Tool arguments. Pointer fields are optional: nil means "leave unchanged"
// for mutations and "no filter" for queries. The json tags drive both the
// generated parameter schemas and the names used in validation messages.

type CreateTaskArgs struct {
	Name             string  `json:"name" mapstructure:"name" validate:"required,nonblank" jsonschema:"description=Name of the task"`
	Note             *string `json:"note,omitempty" mapstructure:"note" jsonschema:"description=Note for the task"`
	Project          *string `json:"project,omitempty" mapstructure:"project" validate:"omitnil,ref" jsonschema:"description=Project to add the task to (inbox when omitted)"`
	Context          *string `json:"context,omitempty" mapstructure:"context" validate:"omitnil,ref" jsonschema:"description=Tag to assign to the task"`
	DueDate          *string `json:"dueDate,omitempty" mapstructure:"dueDate" validate:"omitnil,ofdate" jsonschema:"description=Due date as YYYY-MM-DD or YYYY-MM-DD HH:MM"`
	DeferDate        *string `json:"deferDate,omitempty" mapstructure:"deferDate" validate:"omitnil,ofdate" jsonschema:"description=Defer date as YYYY-MM-DD or YYYY-MM-DD HH:MM"`
	EstimatedMinutes *int    `json:"estimatedMinutes,omitempty" mapstructure:"estimatedMinutes" validate:"omitnil,min=0" jsonschema:"description=Estimated duration in minutes"`
	Flagged          *bool   `json:"flagged,omitempty" mapstructure:"flagged" jsonschema:"description=Flag the new task"`
}

type CreateProjectArgs struct {
	Name      string  `json:"name" mapstructure:"name" validate:"required,nonblank" jsonschema:"description=Name of the project"`
	Note      *string `json:"note,omitempty" mapstructure:"note" jsonschema:"description=Note for the project"`
	Folder    *string `json:"folder,omitempty" mapstructure:"folder" validate:"omitnil,ref" jsonschema:"description=Folder to create the project in"`
	Type      *string `json:"type,omitempty" mapstructure:"type" validate:"omitnil,oneof=parallel sequential single" jsonschema:"enum=parallel,enum=sequential,enum=single,description=Project type"`
	DueDate   *string `json:"dueDate,omitempty" mapstructure:"dueDate" validate:"omitnil,ofdate" jsonschema:"description=Due date as YYYY-MM-DD or YYYY-MM-DD HH:MM"`
	DeferDate *string `json:"deferDate,omitempty" mapstructure:"deferDate" validate:"omitnil,ofdate" jsonschema:"description=Defer date as YYYY-MM-DD or YYYY-MM-DD HH:MM"`
	Flagged   *bool   `json:"flagged,omitempty" mapstructure:"flagged" jsonschema:"description=Flag the new project"`
}

type CreateContextArgs struct {
	Name   string  `json:"name" mapstructure:"name" validate:"required,nonblank" jsonschema:"description=Name of the tag"`
	Parent *string `json:"parent,omitempty" mapstructure:"parent" validate:"omitnil,ref" jsonschema:"description=Parent tag to nest the new tag under"`
}

type EditTaskArgs struct {
	TaskName         string  `json:"taskName" mapstructure:"taskName" validate:"required,nonblank" jsonschema:"description=Current name of the task"`
	Project          *string `json:"project,omitempty" mapstructure:"project" validate:"omitnil,ref" jsonschema:"description=Project containing the task"`
	NewName          *string `json:"newName,omitempty" mapstructure:"newName" validate:"omitnil,nonblank" jsonschema:"description=New name"`
	NewNote          *string `json:"newNote,omitempty" mapstructure:"newNote" jsonschema:"description=New note"`
	NewProject       *string `json:"newProject,omitempty" mapstructure:"newProject" validate:"omitnil,ref" jsonschema:"description=Project to move the task to"`
	NewContext       *string `json:"newContext,omitempty" mapstructure:"newContext" validate:"omitnil,ref" jsonschema:"description=Tag to assign"`
	NewDueDate       *string `json:"newDueDate,omitempty" mapstructure:"newDueDate" validate:"omitnil,ofdate" jsonschema:"description=New due date or none to clear"`
	NewDeferDate     *string `json:"newDeferDate,omitempty" mapstructure:"newDeferDate" validate:"omitnil,ofdate" jsonschema:"description=New defer date or none to clear"`
	Flagged          *bool   `json:"flagged,omitempty" mapstructure:"flagged" jsonschema:"description=Flag state"`
	EstimatedMinutes *int    `json:"estimatedMinutes,omitempty" mapstructure:"estimatedMinutes" validate:"omitnil,min=0" jsonschema:"description=Estimated duration in minutes"`
}

type EditProjectArgs struct {
	ProjectName  string  `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Current name of the project"`
	NewName      *string `json:"newName,omitempty" mapstructure:"newName" validate:"omitnil,nonblank" jsonschema:"description=New name"`
	NewNote      *string `json:"newNote,omitempty" mapstructure:"newNote" jsonschema:"description=New note"`
	NewFolder    *string `json:"newFolder,omitempty" mapstructure:"newFolder" validate:"omitnil,ref" jsonschema:"description=Folder to move the project to"`
	NewType      *string `json:"newType,omitempty" mapstructure:"newType" validate:"omitnil,oneof=parallel sequential single" jsonschema:"enum=parallel,enum=sequential,enum=single,description=New project type"`
	NewContext   *string `json:"newContext,omitempty" mapstructure:"newContext" validate:"omitnil,ref" jsonschema:"description=Tag to assign to the project"`
	Flagged      *bool   `json:"flagged,omitempty" mapstructure:"flagged" jsonschema:"description=Flag state"`
	NewDueDate   *string `json:"newDueDate,omitempty" mapstructure:"newDueDate" validate:"omitnil,ofdate" jsonschema:"description=New due date or none to clear"`
	NewDeferDate *string `json:"newDeferDate,omitempty" mapstructure:"newDeferDate" validate:"omitnil,ofdate" jsonschema:"description=New defer date or none to clear"`
}

// TaskRefArgs names one task, optionally within a project.
type TaskRefArgs struct {
	TaskName string  `json:"taskName" mapstructure:"taskName" validate:"required,nonblank" jsonschema:"description=Name of the task"`
	Project  *string `json:"project,omitempty" mapstructure:"project" validate:"omitnil,ref" jsonschema:"description=Project containing the task"`
}

// ProjectRefArgs names one project.
type ProjectRefArgs struct {
	ProjectName string `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Name of the project"`
}

type FolderRefArgs struct {
	FolderName string `json:"folderName" mapstructure:"folderName" validate:"required,nonblank" jsonschema:"description=Name of the folder"`
}

type TagRefArgs struct {
	TagName string `json:"tagName" mapstructure:"tagName" validate:"required,nonblank" jsonschema:"description=Name of the tag"`
}

type MoveTaskArgs struct {
	TaskName    string  `json:"taskName" mapstructure:"taskName" validate:"required,nonblank" jsonschema:"description=Name of the task"`
	FromProject *string `json:"fromProject,omitempty" mapstructure:"fromProject" validate:"omitnil,ref" jsonschema:"description=Project currently containing the task"`
	ToProject   string  `json:"toProject" mapstructure:"toProject" validate:"required,nonblank" jsonschema:"description=Destination project"`
}

type MoveProjectArgs struct {
	ProjectName string `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Name of the project"`
	ToFolder    string `json:"toFolder" mapstructure:"toFolder" validate:"required,nonblank" jsonschema:"description=Destination folder"`
}

type SetTaskFlagArgs struct {
	TaskName string  `json:"taskName" mapstructure:"taskName" validate:"required,nonblank" jsonschema:"description=Name of the task"`
	Project  *string `json:"project,omitempty" mapstructure:"project" validate:"omitnil,ref" jsonschema:"description=Project containing the task"`
	Flagged  *bool   `json:"flagged" mapstructure:"flagged" validate:"required" jsonschema:"description=Flag state"`
}

type SetTaskDatesArgs struct {
	TaskName         string  `json:"taskName" mapstructure:"taskName" validate:"required,nonblank" jsonschema:"description=Name of the task"`
	Project          *string `json:"project,omitempty" mapstructure:"project" validate:"omitnil,ref" jsonschema:"description=Project containing the task"`
	DueDate          *string `json:"dueDate,omitempty" mapstructure:"dueDate" validate:"omitnil,ofdate" jsonschema:"description=Due date or none to clear"`
	DeferDate        *string `json:"deferDate,omitempty" mapstructure:"deferDate" validate:"omitnil,ofdate" jsonschema:"description=Defer date or none to clear"`
	EstimatedMinutes *int    `json:"estimatedMinutes,omitempty" mapstructure:"estimatedMinutes" validate:"omitnil,min=0" jsonschema:"description=Estimated duration in minutes"`
}

type SetProjectFlagArgs struct {
	ProjectName string `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Name of the project"`
	Flagged     *bool  `json:"flagged" mapstructure:"flagged" validate:"required" jsonschema:"description=Flag state"`
}

type SetProjectDatesArgs struct {
	ProjectName string  `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Name of the project"`
	DueDate     *string `json:"dueDate,omitempty" mapstructure:"dueDate" validate:"omitnil,ofdate" jsonschema:"description=Due date or none to clear"`
	DeferDate   *string `json:"deferDate,omitempty" mapstructure:"deferDate" validate:"omitnil,ofdate" jsonschema:"description=Defer date or none to clear"`
}

type SetProjectStatusArgs struct {
	ProjectName string `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Name of the project"`
	Status      string `json:"status" mapstructure:"status" validate:"required,oneof=active on-hold completed dropped" jsonschema:"enum=active,enum=on-hold,enum=completed,enum=dropped,description=New status"`
}

type ArchiveProjectArgs struct {
	ProjectName string  `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Name of the project"`
	Status      *string `json:"status,omitempty" mapstructure:"status" validate:"omitnil,oneof=completed dropped" jsonschema:"enum=completed,enum=dropped,description=Archive as completed (default) or dropped"`
}

type ListTasksArgs struct {
	Project          *string `json:"project,omitempty" mapstructure:"project" validate:"omitnil,ref" jsonschema:"description=Only tasks of this project"`
	Context          *string `json:"context,omitempty" mapstructure:"context" validate:"omitnil,ref" jsonschema:"description=Only tasks with this tag"`
	IncludeCompleted bool    `json:"includeCompleted,omitempty" mapstructure:"includeCompleted" jsonschema:"description=Include completed tasks"`
	InboxOnly        bool    `json:"inboxOnly,omitempty" mapstructure:"inboxOnly" jsonschema:"description=Only inbox tasks"`
	FlaggedOnly      bool    `json:"flaggedOnly,omitempty" mapstructure:"flaggedOnly" jsonschema:"description=Only flagged tasks"`
}

type ListProjectsArgs struct {
	Folder            *string `json:"folder,omitempty" mapstructure:"folder" validate:"omitnil,ref" jsonschema:"description=Only projects whose folder path contains this folder"`
	IncludeCompleted  bool    `json:"includeCompleted,omitempty" mapstructure:"includeCompleted" jsonschema:"description=Include completed and dropped projects"`
	IncompleteOnly    bool    `json:"incompleteOnly,omitempty" mapstructure:"incompleteOnly" jsonschema:"description=Only projects that are not completed"`
	EmptyProjectsOnly bool    `json:"emptyProjectsOnly,omitempty" mapstructure:"emptyProjectsOnly" jsonschema:"description=Only projects without incomplete tasks"`
}

type SearchTasksArgs struct {
	Query            string `json:"query" mapstructure:"query" validate:"required,nonblank" jsonschema:"description=Text to look for in task names"`
	IncludeCompleted bool   `json:"includeCompleted,omitempty" mapstructure:"includeCompleted" jsonschema:"description=Include completed tasks"`
}

type ListContextsArgs struct {
	IncludeInactive bool `json:"includeInactive,omitempty" mapstructure:"includeInactive" jsonschema:"description=Include hidden tags"`
}

type ListFoldersArgs struct {
	IncludeProjectCounts bool `json:"includeProjectCounts,omitempty" mapstructure:"includeProjectCounts" jsonschema:"description=Show the number of projects per folder"`
	IncludeEmptyFolders  bool `json:"includeEmptyFolders,omitempty" mapstructure:"includeEmptyFolders" jsonschema:"description=Include folders without projects"`
}

type ListFolderHierarchyArgs struct {
	IncludeProjectCounts bool `json:"includeProjectCounts,omitempty" mapstructure:"includeProjectCounts" jsonschema:"description=Show project counts"`
	IncludeTaskCounts    bool `json:"includeTaskCounts,omitempty" mapstructure:"includeTaskCounts" jsonschema:"description=Show incomplete task counts"`
	IncludeEmptyFolders  bool `json:"includeEmptyFolders,omitempty" mapstructure:"includeEmptyFolders" jsonschema:"description=Include folders without projects"`
}

type ListTagsHierarchyArgs struct {
	IncludeInactive   bool `json:"includeInactive,omitempty" mapstructure:"includeInactive" jsonschema:"description=Include hidden tags"`
	IncludeUsageStats bool `json:"includeUsageStats,omitempty" mapstructure:"includeUsageStats" jsonschema:"description=Show remaining task counts"`
}

type ProjectLinkArgs struct {
	ProjectName string  `json:"projectName" mapstructure:"projectName" validate:"required,nonblank" jsonschema:"description=Name of the project"`
	Format      *string `json:"format,omitempty" mapstructure:"format" validate:"omitnil,oneof=url markdown html" jsonschema:"enum=url,enum=markdown,enum=html,description=Link rendering (default markdown)"`
}

type TaskLinkArgs struct {
	TaskName string  `json:"taskName" mapstructure:"taskName" validate:"required,nonblank" jsonschema:"description=Name of the task"`
	Project  *string `json:"project,omitempty" mapstructure:"project" validate:"omitnil,ref" jsonschema:"description=Project containing the task"`
	Format   *string `json:"format,omitempty" mapstructure:"format" validate:"omitnil,oneof=url markdown html" jsonschema:"enum=url,enum=markdown,enum=html,description=Link rendering (default markdown)"`
}

// NoArgs is used by tools without parameters.
type NoArgs struct{}

type SwitchPerspectiveArgs struct {
	PerspectiveName string `json:"perspectiveName" mapstructure:"perspectiveName" validate:"required,nonblank" jsonschema:"description=Name of the perspective to show"`
}

type PerspectiveContentsArgs struct {
	PerspectiveName *string `json:"perspectiveName,omitempty" mapstructure:"perspectiveName" validate:"omitnil,ref" jsonschema:"description=Perspective to switch to first (current one when omitted)"`
	Limit           *int    `json:"limit,omitempty" mapstructure:"limit" validate:"omitnil,min=1,max=1000" jsonschema:"description=Maximum number of items (default 100)"`
}

type ResolveEntityArgs struct {
	Kind string `json:"kind" mapstructure:"kind" validate:"required,oneof=project folder tag task" jsonschema:"enum=project,enum=folder,enum=tag,enum=task,description=Entity kind"`
	Name string `json:"name" mapstructure:"name" validate:"required,nonblank" jsonschema:"description=Exact entity name"`
}
