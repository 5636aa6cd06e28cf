// Package handler provides the HTTP handlers of the subscription feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube_backend/internal/feature/subscription/domain/entity"
	"vidtube_backend/internal/platform/docstore"
	"vidtube_backend/internal/platform/http/request"
	"vidtube_backend/internal/platform/http/response"
	jwtmw "vidtube_backend/internal/platform/jwt"
)

type SubscriptionUsecase interface {
	Subscribe(ctx context.Context, actor, channel uuid.UUID) (*entity.Subscription, error)
	Unsubscribe(ctx context.Context, actor, channel uuid.UUID) error
	Toggle(ctx context.Context, actor, channel uuid.UUID) (bool, error)
}

// SubscriptionViewer lists both sides of the subscription graph.
type SubscriptionViewer interface {
	ChannelSubscribers(ctx context.Context, channelID uuid.UUID) ([]docstore.Document, error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]docstore.Document, error)
}

type SubscriptionHandler struct {
	subs  SubscriptionUsecase
	views SubscriptionViewer
}

func NewSubscriptionHandler(subs SubscriptionUsecase, views SubscriptionViewer) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, views: views}
}

// Subscribe handles POST /subscriptions/c/:channelId.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	channel, err := request.ID(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	s, err := h.subs.Subscribe(c.Request.Context(), actor, channel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, s, "subscribed successfully")
}

// Unsubscribe handles DELETE /subscriptions/c/:channelId.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	channel, err := request.ID(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.subs.Unsubscribe(c.Request.Context(), actor, channel); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"isSubscribed": false}, "unsubscribed successfully")
}

// Toggle handles POST /subscriptions/toggle/c/:channelId.
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	actor, ok := jwtmw.RequireActor(c)
	if !ok {
		return
	}
	channel, err := request.ID(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	subscribed, err := h.subs.Toggle(c.Request.Context(), actor, channel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, "subscription toggled successfully")
}

// Subscribers handles GET /subscriptions/c/:channelId.
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channel, err := request.ID(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	docs, err := h.views.ChannelSubscribers(c.Request.Context(), channel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "subscribers fetched successfully")
}

// SubscribedChannels handles GET /subscriptions/u/:subscriberId.
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriber, err := request.ID(c, "subscriberId")
	if err != nil {
		response.Error(c, err)
		return
	}
	docs, err := h.views.SubscribedChannels(c.Request.Context(), subscriber)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, docs, "subscribed channels fetched successfully")
}
