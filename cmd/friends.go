package main

import (
	"context"
	"fmt"

	"github.com/roundsapp/rounds/internal/models"
	"github.com/roundsapp/rounds/internal/shared"
	"github.com/urfave/cli/v3"
)

// FriendsList prints the user's accepted friends.
func (r *Runner) FriendsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	friends, err := r.friends.Friends(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(friends, cmd.Bool("pretty"))
	}

	if len(friends) == 0 {
		return r.writePlain("No friends yet\n")
	}
	for _, friend := range friends {
		r.writePlain("%s (@%s)  hcp %.1f  elo %d\n",
			friend.FullName, friend.Username, friend.Handicap, friend.Elo)
	}
	return nil
}

// FriendsRequests prints incoming pending requests.
func (r *Runner) FriendsRequests(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	requests, err := r.friends.Requests(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(requests, cmd.Bool("pretty"))
	}

	if len(requests) == 0 {
		return r.writePlain("No pending requests\n")
	}
	for _, request := range requests {
		name := request.RequesterID
		if request.Requester != nil {
			name = fmt.Sprintf("%s (@%s)", request.Requester.FullName(), request.Requester.Username())
		}
		r.writePlain("%s  %s  (id %s)\n", name, request.CreatedAt.Format("Jan 2"), request.ID)
	}
	return nil
}

// FriendsAdd sends a friend request to the given user.
func (r *Runner) FriendsAdd(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.StringArg("user")
	if userID == "" {
		return fmt.Errorf("%w: user ID is required", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	request, err := r.friends.SendRequest(ctx, userID)
	if err != nil {
		return err
	}

	r.logger.Info("friend request sent", "request", request.ID)
	return r.writePlain("Request sent (%s)\n", request.Status)
}

// FriendsAccept accepts a pending request.
func (r *Runner) FriendsAccept(ctx context.Context, cmd *cli.Command) error {
	return r.answerRequest(ctx, cmd, true)
}

// FriendsDecline declines a pending request.
func (r *Runner) FriendsDecline(ctx context.Context, cmd *cli.Command) error {
	return r.answerRequest(ctx, cmd, false)
}

func (r *Runner) answerRequest(ctx context.Context, cmd *cli.Command, accept bool) error {
	requestID := cmd.StringArg("request")
	if requestID == "" {
		return fmt.Errorf("%w: request ID is required", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	request, err := r.friends.RespondToRequest(ctx, requestID, accept)
	if err != nil {
		return err
	}

	// Render the backend's answer, not the intent: a raced request may
	// already be in another state.
	switch request.Status {
	case models.FriendshipAccepted:
		return r.writePlain("Request accepted\n")
	case models.FriendshipDeclined:
		return r.writePlain("Request declined\n")
	default:
		return r.writePlain("Request is now %s\n", request.Status)
	}
}

// FriendsBlock blocks a user.
func (r *Runner) FriendsBlock(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.StringArg("user")
	if userID == "" {
		return fmt.Errorf("%w: user ID is required", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if err := r.friends.Block(ctx, userID); err != nil {
		return err
	}
	return r.writePlain("Blocked\n")
}

// FriendsSearch searches users by name or username.
func (r *Runner) FriendsSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	results, err := r.search.SearchUsers(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	if len(results) == 0 {
		return r.writePlain("No golfers found\n")
	}
	for _, result := range results {
		r.writePlain("%s (@%s)  hcp %.1f  elo %d  %s  (id %s)\n",
			result.FullName, result.Username, result.Handicap, result.Elo,
			result.FriendshipStatus, result.ID)
	}
	return nil
}
