package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarsavers/solarsavers-api/internal/assistant"
	"github.com/solarsavers/solarsavers-api/internal/models"
)

func TestTicketReplies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	notif, mail := newRecordingNotifications()
	tickets := NewTicketService(store.Tickets, notif)
	owner := createUser(t, store, "owner@example.com", models.RoleCustomer)
	stranger := createUser(t, store, "stranger@example.com", models.RoleCustomer)
	admin := createUser(t, store, "admin@example.com", models.RoleAdmin)

	ticket, err := tickets.Create(ctx, owner, &CreateTicketRequest{Subject: "Inverter noise", Message: "It hums at night"})
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, models.TicketCategoryGeneral, ticket.Category)

	_, err = tickets.Reply(ctx, stranger, ticket.ID, &TicketReplyRequest{Message: "me too"})
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = tickets.Reply(ctx, owner, ticket.ID, &TicketReplyRequest{Message: "Still humming"})
	require.NoError(t, err)
	reply, err := tickets.Reply(ctx, admin, ticket.ID, &TicketReplyRequest{Message: "A technician will visit"})
	require.NoError(t, err)
	assert.True(t, reply.IsAdmin)

	got, err := tickets.Get(ctx, owner, ticket.ID)
	require.NoError(t, err)
	require.Len(t, got.Replies, 2)
	assert.False(t, got.Replies[0].IsAdmin)
	assert.Equal(t, "A technician will visit", got.Replies[1].Message)
	assert.True(t, got.UpdatedAt.After(ticket.UpdatedAt))

	notif.Wait()
	sent := mail.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, owner.Email, sent[0].to)
	assert.Equal(t, "Re: Inverter noise", sent[0].subject)
}

func TestTicketAdminUpdates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	tickets := NewTicketService(store.Tickets, nil)
	owner := createUser(t, store, "owner@example.com", models.RoleCustomer)

	ticket, err := tickets.Create(ctx, owner, &CreateTicketRequest{Subject: "Billing", Message: "Charged twice", Category: "billing"})
	require.NoError(t, err)

	_, err = tickets.UpdateStatus(ctx, ticket.ID, &TicketStatusRequest{Status: "archived"})
	assert.Equal(t, KindValidation, KindOf(err))
	resolved, err := tickets.UpdateStatus(ctx, ticket.ID, &TicketStatusRequest{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, resolved.Status)

	_, err = tickets.UpdatePriority(ctx, ticket.ID, &TicketPriorityRequest{Priority: "urgent"})
	assert.Equal(t, KindValidation, KindOf(err))
	high, err := tickets.UpdatePriority(ctx, ticket.ID, &TicketPriorityRequest{Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, models.TicketPriorityHigh, high.Priority)

	open, err := tickets.ListAll(ctx, "open")
	require.NoError(t, err)
	assert.Empty(t, open)
	all, err := tickets.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = tickets.UpdateStatus(ctx, "missing", &TicketStatusRequest{Status: "closed"})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestBlogViewsAndVisibility(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	blogs := NewBlogService(store.Blogs)
	admin := createUser(t, store, "admin@example.com", models.RoleAdmin)

	draft := false
	_, err := blogs.Create(ctx, admin, &CreateBlogRequest{Title: "Draft", Content: "wip", Category: "news", IsPublished: &draft})
	require.NoError(t, err)
	post, err := blogs.Create(ctx, admin, &CreateBlogRequest{Title: "Net metering 101", Content: "...", Category: "guides"})
	require.NoError(t, err)
	assert.True(t, post.IsPublished)
	assert.Equal(t, admin.Name, post.AuthorName)

	_, err = blogs.View(ctx, post.ID)
	require.NoError(t, err)
	viewed, err := blogs.View(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Views+2, viewed.Views)

	public, err := blogs.List(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, post.ID, public[0].ID)

	guides, err := blogs.List(ctx, "guides", true)
	require.NoError(t, err)
	assert.Len(t, guides, 1)
	_, err = blogs.List(ctx, "gossip", true)
	assert.Equal(t, KindValidation, KindOf(err))

	all, err := blogs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	title := "Net metering explained"
	updated, err := blogs.Update(ctx, post.ID, &UpdateBlogRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	require.NoError(t, blogs.Delete(ctx, post.ID))
	_, err = blogs.View(ctx, post.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestContactSubmission(t *testing.T) {
	ctx := context.Background()
	contacts := NewContactService(newTestStore().Contacts)

	c, err := contacts.Submit(ctx, &ContactRequest{Name: " Asha ", Email: "Asha@Example.com", Message: "Call me"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", c.Email)
	assert.Equal(t, "Asha", c.Name)
	assert.Equal(t, "new", c.Status)

	_, err = contacts.Submit(ctx, &ContactRequest{Name: "x", Email: "bad", Message: "y"})
	assert.Equal(t, KindValidation, KindOf(err))

	listed, err := contacts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

type failingResponder struct{}

func (failingResponder) Reply(context.Context, string, []assistant.Turn) (string, error) {
	return "", errors.New("quota exceeded")
}

type echoResponder struct {
	histories [][]assistant.Turn
}

func (e *echoResponder) Reply(_ context.Context, prompt string, history []assistant.Turn) (string, error) {
	e.histories = append(e.histories, history)
	return "echo: " + prompt, nil
}

func TestChatKeepsSessionHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	echo := &echoResponder{}
	chat := NewChatService(store.Chat, echo, 0)

	first, err := chat.Send(ctx, nil, &ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.SessionID)
	assert.Equal(t, "echo: hello", first.Response)

	_, err = chat.Send(ctx, nil, &ChatRequest{Message: "again", SessionID: first.SessionID})
	require.NoError(t, err)

	require.Len(t, echo.histories, 2)
	assert.Empty(t, echo.histories[0])
	assert.Equal(t, []assistant.Turn{{User: "hello", Assistant: "echo: hello"}}, echo.histories[1])
}

func TestChatFallsBackToKeywords(t *testing.T) {
	chat := NewChatService(newTestStore().Chat, failingResponder{}, 5)

	resp, err := chat.Send(context.Background(), nil, &ChatRequest{Message: "What warranty do I get?"})
	require.NoError(t, err)
	assert.Contains(t, resp.Response, "25-30 year warranties")
}
