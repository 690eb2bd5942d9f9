// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for movie discovery:
//  1. [BrowseView] : Tabbed catalog feeds (recent, top rated, personal recommendations) with load-more pagination
//  2. [SearchView] : Search-as-you-type with a 300 ms debounce over the query input
//  3. [DetailView] : Full movie record with rate, favorite, add-to-list, and comment actions
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Catalog feeds accumulate pages through [pager.Pager]; opening a detail view records the movie in the
// authenticated user's watch history as a fire-and-forget side effect.
//
// Account actions require an authenticated [auth.Session]. When the session is anonymous the service layer
// rejects them before any network call and the view surfaces a log-in notice instead.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, /, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
