// Package docs generates a docsify documentation site for the components
// defined in a project's templates.
//
// A run extracts every definition first, then writes index.html,
// _sidebar.md, and one components/<name>.md page per component. README.md is
// copied only when the output root has none. Page layouts are templates in
// the "docs" engine namespace and can be overridden per project or per user.
package docs
