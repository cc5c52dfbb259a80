// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// The root [Model] starts on a login view and, once signed in, renders a five
// tab layout:
//  1. [TabHome] : profile summary and recent matches
//  2. [TabRankings] : the global elo leaderboard
//  3. [TabSocial] : friends, incoming requests, and debounced user search
//  4. [TabTournaments] : upcoming tournament listings
//  5. [TabSettings] : account and client configuration
//
// All tab models are constructed once and stay mounted for the life of the
// program; [TabSelection] only decides which one receives key input and is
// rendered. Selecting a tab, including re-selecting the active one, briefly
// flashes its label as acknowledgment.
//
// [SearchModel] debounces query input and discards superseded responses via a
// generation counter. [ImportModel] renders the scorecard import pipeline,
// driven by the session state machine in the tasks package.
//
// Keyboard navigation uses number keys for direct tab selection, tab/shift+tab
// to cycle, and vim-style bindings inside lists, with contextual help via
// charmbracelet/bubbles/help.
package ui
