package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/app/scope"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/websocket"
	"github.com/yigit/diasporahub/internal/seed"
)

func TestThreadServiceCreateAndSend(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	svc := NewThreadService(newTestRepos(t).ThreadRepository, registry.Default(), accraOsu(), events, zerolog.Nop())

	thread, err := svc.Create(ctx, &dto.CreateThreadRequest{
		Title:        " Osu parents ",
		Kind:         models.ThreadKindGroup,
		Participants: []string{"Ama", " ", "Kojo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Osu parents", thread.Title)
	assert.Equal(t, "accra-gh", thread.CommunityID)
	assert.Equal(t, "accra-osu", thread.AreaID)
	assert.Equal(t, []string{"Ama", "Kojo"}, thread.Participants)

	got, err := svc.Get(ctx, thread.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)

	msg, err := svc.SendMessage(ctx, thread.ID, &dto.SendMessageRequest{Author: "Ama", Body: "Hello"})
	require.NoError(t, err)

	got, err = svc.Get(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, msg.ID, got.Messages[0].ID)

	sent := events.all()
	require.Len(t, sent, 1)
	assert.Equal(t, websocket.ThreadChannel(thread.ID), sent[0].channel)
	assert.Equal(t, EventThreadMessage, sent[0].eventType)

	list, err := svc.List(ctx, scope.Query{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "accra-osu", list.Scope.AreaID)

	_, err = svc.SendMessage(ctx, "missing", &dto.SendMessageRequest{Author: "Ama", Body: "Hi"})
	assert.ErrorIs(t, err, apperrors.ErrThreadNotFound)
}

func TestGroupServiceNarrowsToArea(t *testing.T) {
	svc := NewGroupService(seed.Groups(), registry.Default(), accraOsu())

	res, err := svc.List(context.Background(), scope.Query{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	for _, g := range res.Items {
		assert.Equal(t, "accra-osu", g.AreaID)
	}

	res, err = svc.List(context.Background(), scope.Query{AreaID: models.AreaAll, Category: "sports"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)
	for _, g := range res.Items {
		assert.Equal(t, "sports", g.Category)
		assert.Equal(t, "accra-gh", g.CommunityID)
	}
}

func TestDirectoryServicesReturnEmptyListNotNil(t *testing.T) {
	state := fixedState{}
	state.snap.CommunityID = "berlin-de"
	state.snap.AreaID = models.AreaAll

	hub, err := NewStudentHubService(seed.HelpRequests(time.Now()), registry.Default(), state).
		List(context.Background(), scope.Query{Search: "zzz-nothing"})
	require.NoError(t, err)
	assert.NotNil(t, hub.Items)
	assert.Empty(t, hub.Items)

	market, err := NewMarketplaceService(seed.Listings(), registry.Default(), accraOsu()).
		List(context.Background(), scope.Query{Search: "KENTE"})
	require.NoError(t, err)
	require.Len(t, market.Items, 1)
	assert.Equal(t, "lst-accra-osu-kente", market.Items[0].ID)
}

func TestEventServiceCreateValidatesDates(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newTestRepos(t).EventRepository, registry.Default(), accraOsu(), time.UTC, 0, zerolog.Nop())

	_, err := svc.Create(ctx, &dto.CreateEventRequest{Title: "Meetup", Category: "social", StartISO: "next friday"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Meetup", Category: "social",
		StartISO: "2026-01-15T18:00:00", EndISO: "2026-01-15T17:00:00",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	event, err := svc.Create(ctx, &dto.CreateEventRequest{Title: "Meetup", Category: "social", StartISO: "2026-01-15T18:00:00"})
	require.NoError(t, err)
	assert.Equal(t, "accra-gh", event.CommunityID)
	assert.Equal(t, "accra-osu", event.AreaID)
}

func TestEventServiceCalendar(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newTestRepos(t).EventRepository, registry.Default(), accraOsu(), time.UTC, 0, zerolog.Nop())

	event, err := svc.Create(ctx, &dto.CreateEventRequest{Title: "Meetup", Category: "social", StartISO: "2026-01-15T18:00:00"})
	require.NoError(t, err)

	name, body, err := svc.Calendar(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "meetup.ics", name)

	text := string(body)
	assert.Contains(t, text, "SUMMARY:Meetup\r\n")
	assert.Contains(t, text, "DTSTART:20260115T180000Z\r\n")
	assert.Contains(t, text, "DTEND:20260115T200000Z\r\n")
	assert.Contains(t, text, "LOCATION:Accra\\, Ghana\r\n")
	assert.True(t, strings.HasPrefix(text, "BEGIN:VCALENDAR\r\n"))

	_, _, err = svc.Calendar(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	require.NoError(t, svc.Delete(ctx, event.ID))
	_, err = svc.Get(ctx, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestFeedServicePublishesNewPosts(t *testing.T) {
	ctx := context.Background()
	events := &recordingPublisher{}
	svc := NewFeedService(newTestRepos(t).PostRepository, registry.Default(), accraOsu(), events, zerolog.Nop())

	post, err := svc.Create(ctx, &dto.CreatePostRequest{Author: "Ama", Body: "Hello Osu"})
	require.NoError(t, err)

	sent := events.all()
	require.Len(t, sent, 1)
	assert.Equal(t, websocket.CommunityChannel("accra-gh"), sent[0].channel)
	assert.Equal(t, EventPostCreated, sent[0].eventType)

	liked, err := svc.ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.True(t, liked.LikedByMe)

	list, err := svc.List(ctx, scope.Query{Category: "ignored"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Empty(t, list.Scope.Category)

	require.NoError(t, svc.Delete(ctx, post.ID))
	assert.ErrorIs(t, svc.Delete(ctx, post.ID), apperrors.ErrPostNotFound)
}

func TestContentServicesRejectBlankText(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	reg := registry.Default()

	threads := NewThreadService(repos.ThreadRepository, reg, accraOsu(), nil, zerolog.Nop())
	_, err := threads.Create(ctx, &dto.CreateThreadRequest{Title: "   ", Kind: models.ThreadKindGroup})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	thread, err := threads.Create(ctx, &dto.CreateThreadRequest{Title: "Osu parents", Kind: models.ThreadKindGroup})
	require.NoError(t, err)
	_, err = threads.SendMessage(ctx, thread.ID, &dto.SendMessageRequest{Author: "  ", Body: "Hi"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = threads.SendMessage(ctx, thread.ID, &dto.SendMessageRequest{Author: "Ama", Body: "\t\n"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	got, err := threads.Get(ctx, thread.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)

	events := NewEventService(repos.EventRepository, reg, accraOsu(), time.UTC, 0, zerolog.Nop())
	_, err = events.Create(ctx, &dto.CreateEventRequest{Title: " ", Category: "social", StartISO: "2026-01-15T18:00:00"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	feed := NewFeedService(repos.PostRepository, reg, accraOsu(), nil, zerolog.Nop())
	before, err := feed.List(ctx, scope.Query{})
	require.NoError(t, err)
	_, err = feed.Create(ctx, &dto.CreatePostRequest{Author: "Ama", Body: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	after, err := feed.List(ctx, scope.Query{})
	require.NoError(t, err)
	assert.Len(t, after.Items, len(before.Items))
}
