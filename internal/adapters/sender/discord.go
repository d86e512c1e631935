package sender

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"waifubot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// InteractionSession is the slice of the discordgo session the replier needs.
type InteractionSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// InteractionReplier enforces the reply lifecycle of a single interaction:
// an optional defer, then exactly one terminal reply. A second terminal
// reply returns domain.ErrAlreadyReplied without calling Discord.
type InteractionReplier struct {
	session     InteractionSession
	interaction *discordgo.Interaction
	component   bool

	mu    sync.Mutex
	state domain.ReplyState
}

func NewInteractionReplier(session InteractionSession, interaction *discordgo.Interaction) *InteractionReplier {
	return &InteractionReplier{session: session, interaction: interaction}
}

// NewComponentReplier creates a replier for a button press; its terminal
// reply edits the message the button is attached to.
func NewComponentReplier(session InteractionSession, interaction *discordgo.Interaction) *InteractionReplier {
	return &InteractionReplier{session: session, interaction: interaction, component: true}
}

func (r *InteractionReplier) Defer(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.ReplyFresh {
		return domain.ErrAlreadyReplied
	}

	responseType := discordgo.InteractionResponseDeferredChannelMessageWithSource
	if r.component {
		responseType = discordgo.InteractionResponseDeferredMessageUpdate
	}

	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: responseType,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}

	r.state = domain.ReplyDeferred
	return nil
}

func (r *InteractionReplier) Reply(ctx context.Context, text string) error {
	return r.respond(ctx, &discordgo.InteractionResponseData{Content: text}, false)
}

func (r *InteractionReplier) ReplyEphemeral(ctx context.Context, text string) error {
	return r.respond(ctx, &discordgo.InteractionResponseData{
		Content: text,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, true)
}

func (r *InteractionReplier) ReplyEmbed(ctx context.Context, embed domain.Embed) error {
	return r.respond(ctx, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{buildEmbed(embed)},
	}, false)
}

func (r *InteractionReplier) ReplyPage(ctx context.Context, embed domain.Embed,
	controls domain.PageControls) error {
	return r.respond(ctx, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildEmbed(embed)},
		Components: pageComponents(controls),
	}, false)
}

func (r *InteractionReplier) ReplyFile(ctx context.Context, name string, data []byte, text string) error {
	return r.respond(ctx, &discordgo.InteractionResponseData{
		Content: text,
		Files: []*discordgo.File{{
			Name:        name,
			ContentType: "image/png",
			Reader:      bytes.NewReader(data),
		}},
	}, false)
}

func (r *InteractionReplier) FollowUpEmbed(ctx context.Context, embed domain.Embed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.ReplyReplied {
		return fmt.Errorf("follow-up requires a terminal reply first")
	}

	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{buildEmbed(embed)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send follow-up: %w", err)
	}

	return nil
}

func (r *InteractionReplier) Replied() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == domain.ReplyReplied
}

func (r *InteractionReplier) Deferred() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == domain.ReplyDeferred
}

// respond sends the terminal reply. When the interaction was deferred, it
// edits the placeholder instead. asMessage forces a fresh message even on
// component interactions, used for ephemeral notices that must not touch
// the paginated message.
func (r *InteractionReplier) respond(ctx context.Context, data *discordgo.InteractionResponseData,
	asMessage bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case domain.ReplyReplied:
		return domain.ErrAlreadyReplied
	case domain.ReplyDeferred:
		edit := &discordgo.WebhookEdit{}
		if data.Content != "" {
			edit.Content = &data.Content
		}
		if len(data.Embeds) > 0 {
			edit.Embeds = &data.Embeds
		}
		if len(data.Components) > 0 {
			edit.Components = &data.Components
		}
		if len(data.Files) > 0 {
			edit.Files = data.Files
		}

		if _, err := r.session.InteractionResponseEdit(r.interaction, edit, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to edit deferred reply: %w", err)
		}
	default:
		responseType := discordgo.InteractionResponseChannelMessageWithSource
		if r.component && !asMessage {
			responseType = discordgo.InteractionResponseUpdateMessage
		}

		err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
			Type: responseType,
			Data: data,
		}, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("failed to send reply: %w", err)
		}
	}

	r.state = domain.ReplyReplied
	log.Debug().Bool("component", r.component).Msg("terminal reply sent")

	return nil
}

func buildEmbed(embed domain.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
	}

	if embed.ImageURL != "" {
		out.Image = &discordgo.MessageEmbedImage{URL: embed.ImageURL}
	}

	if embed.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}

	for _, field := range embed.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	return out
}

func pageComponents(controls domain.PageControls) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀ Prev",
					Style:    discordgo.SecondaryButton,
					CustomID: domain.PageButtonID(domain.PagePrev, controls.OwnerID),
					Disabled: controls.DisablePrev,
				},
				discordgo.Button{
					Label:    "Next ▶",
					Style:    discordgo.PrimaryButton,
					CustomID: domain.PageButtonID(domain.PageNext, controls.OwnerID),
					Disabled: controls.DisableNext,
				},
			},
		},
	}
}
