package handler

import (
	"context"
	"time"

	"waifubot/internal/adapters/sender"
	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const failsafeReply = "something went wrong, please try again later"

// Interaction routes inbound Discord interactions: slash commands to the
// registry, pagination buttons to the pager. Every dispatch runs under a
// safety net that guarantees one terminal reply even when a handler fails
// or panics.
type Interaction struct {
	registry port.Registry
	pager    port.Pager
	timeout  time.Duration
}

func NewInteraction(registry port.Registry, pager port.Pager, timeout time.Duration) *Interaction {
	return &Interaction{registry: registry, pager: pager, timeout: timeout}
}

func (h *Interaction) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(s, i)
	}
}

func (h *Interaction) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	cmd, err := h.registry.Get(data.Name)
	if err != nil {
		log.Debug().Str("command", data.Name).Msg("no handler for command")
		return
	}

	req := &domain.Request{
		Command:   data.Name,
		Args:      decodeOptions(data.Options),
		UserID:    interactionUserID(i),
		Username:  interactionUserName(i),
		ChannelID: i.ChannelID,
	}

	h.dispatch(context.Background(), cmd, req, sender.NewInteractionReplier(s, i.Interaction))
}

func (h *Interaction) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()

	action, err := domain.ParseButtonID(data.CustomID)
	if err != nil {
		log.Debug().Str("customId", data.CustomID).Msg("ignoring unknown component")
		return
	}

	h.dispatchPage(context.Background(), action, interactionUserID(i),
		sender.NewComponentReplier(s, i.Interaction))
}

// dispatch runs a command handler under the reply safety net.
func (h *Interaction) dispatch(ctx context.Context, cmd port.Command, req *domain.Request,
	reply port.Replier) {
	defer h.failsafe(ctx, req.Command, reply)

	if err := cmd.Respond(ctx, h.timeout, req, reply); err != nil {
		log.Error().Err(err).Str("command", req.Command).Msg("failed to respond to command")
	}
}

// dispatchPage authorizes and runs a pagination action under the safety net.
func (h *Interaction) dispatchPage(ctx context.Context, action domain.ButtonAction, requesterID string,
	reply port.Replier) {
	defer h.failsafe(ctx, action.Action, reply)

	if requesterID != action.OwnerID {
		log.Debug().
			Str("ownerId", action.OwnerID).
			Str("requesterId", requesterID).
			Msg("rejecting page action from non-owner")

		if err := reply.ReplyEphemeral(ctx, "only the user who started this search can change pages"); err != nil {
			log.Error().Err(err).Msg("failed to send authorization reply")
		}
		return
	}

	if err := h.pager.RespondPage(ctx, h.timeout, action, reply); err != nil {
		log.Error().Err(err).Str("action", action.Action).Msg("failed to respond to page action")
	}
}

// failsafe recovers panics and makes sure the interaction ends with a
// terminal reply: an edit when it was deferred, an ephemeral notice
// otherwise. Handler-level error handling remains the first line; this
// only upholds the reply-once guarantee.
func (h *Interaction) failsafe(ctx context.Context, name string, reply port.Replier) {
	if r := recover(); r != nil {
		log.Error().Interface("panic", r).Str("handler", name).Msg("recovered from handler panic")
	}

	if reply.Replied() {
		return
	}

	var err error
	if reply.Deferred() {
		err = reply.Reply(ctx, failsafeReply)
	} else {
		err = reply.ReplyEphemeral(ctx, failsafeReply)
	}

	if err != nil {
		log.Error().Err(err).Str("handler", name).Msg("failed to send failsafe reply")
	}
}

func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption) domain.Args {
	args := make(domain.Args, len(options))
	for _, option := range options {
		args[option.Name] = option.Value
	}

	return args
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}

	if i.User != nil {
		return i.User.ID
	}

	return ""
}

func interactionUserName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}

	if i.User != nil {
		return i.User.Username
	}

	return ""
}
