// Package models defines the domain types for the rounds client.
//
// Two kinds of types live here:
//
//   - Persisted models ([Session], [Profile], [Course]) implement the [Model]
//     interface and are stored in the local SQLite cache through
//     [Repository] implementations in internal/repositories.
//
//   - Wire types ([FriendRequest], [UserSearchResult], [LeaderboardEntry],
//     [MatchSummary], [Tournament]) mirror backend API payloads. They are
//     plain structs with JSON tags and are never persisted locally.
//
// The [FriendshipStatus] enumeration covers every relationship state the
// backend can report, including the client-only rendering states
// [FriendshipNone] and [FriendshipSelf].
package models
