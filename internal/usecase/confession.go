package usecase

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/yomogi/ghostboard/internal/domain"
)

// SubmitInput is the validated input for posting a confession.
type SubmitInput struct {
	Text          string
	Tags          []string
	AllowComments *bool
	AuthorID      string
}

// ConfessionUsecase is the submission pipeline: validate, moderate, post
// through the remote feed service, then seed local engagement state.
type ConfessionUsecase struct {
	repo       EngagementRepository
	gateway    FeedGateway
	moderation ModerationChecker
	events     EventPublisher
}

func NewConfessionUsecase(
	repo EngagementRepository,
	gateway FeedGateway,
	moderation ModerationChecker,
	events EventPublisher,
) *ConfessionUsecase {
	return &ConfessionUsecase{
		repo:       repo,
		gateway:    gateway,
		moderation: moderation,
		events:     events,
	}
}

// Submit runs the pipeline in order; the first failing gate short-circuits.
// Length is checked on the raw text; the combined text-plus-hashtags string
// is silently truncated to the limit before transmission.
func (uc *ConfessionUsecase) Submit(ctx context.Context, input SubmitInput) (domain.Confession, error) {
	ctx, span := tracer.Start(ctx, "Confession.Usecase.Submit")
	defer span.End()

	tags := NormalizeTags(input.Tags)

	if strings.TrimSpace(input.Text) == "" {
		return domain.Confession{}, domain.ValidationError{Reason: "confession text is empty"}
	}
	if utf8.RuneCountInString(input.Text) > domain.MaxConfessionLength {
		return domain.Confession{}, domain.ValidationError{Reason: "confession text exceeds 280 characters"}
	}

	if clean, matches := uc.moderation.Check(input.Text); !clean {
		span.RecordError(domain.ModerationError{Matches: matches})
		return domain.Confession{}, domain.ModerationError{Matches: matches}
	}

	outgoing := composeOutgoing(input.Text, tags)

	status, err := uc.gateway.PostStatus(ctx, outgoing)
	if err != nil {
		span.RecordError(err)
		return domain.Confession{}, domain.RemoteUnavailableError{Detail: err.Error(), Err: err}
	}

	allowComments := true
	if input.AllowComments != nil {
		allowComments = *input.AllowComments
	}

	meta := domain.ConfessionMeta{
		ID:            status.ID,
		AuthorID:      input.AuthorID,
		Tags:          tags,
		AllowComments: allowComments,
		CreatedAt:     status.CreatedAt,
	}

	if err := uc.repo.SaveConfessionMeta(ctx, meta); err != nil {
		return domain.Confession{}, domain.StoreError{Err: err}
	}

	confession := domain.Confession{
		ID:            status.ID,
		Text:          status.Text,
		CreatedAt:     status.CreatedAt,
		Tags:          tags,
		AuthorID:      input.AuthorID,
		AllowComments: allowComments,
	}

	if uc.events != nil {
		event := domain.Event{Type: domain.EventConfessionPosted, Confession: &confession}
		if err := uc.events.Publish(ctx, event); err != nil {
			slog.WarnContext(
				ctx, "failed to publish confession event",
				slog.String("error", err.Error()),
				slog.String("module", "confession"),
			)
		}
	}

	return confession, nil
}

// NormalizeTags strips a leading '#', trims whitespace, truncates each tag
// to the per-tag limit and caps the tag count. Empty results are dropped.
// Case is preserved and duplicates are kept.
func NormalizeTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > domain.MaxTagLength {
			tag = string([]rune(tag)[:domain.MaxTagLength])
		}
		out = append(out, tag)
		if len(out) == domain.MaxTags {
			break
		}
	}
	return out
}

func composeOutgoing(text string, tags []string) string {
	if len(tags) == 0 {
		return text
	}

	hashtags := make([]string, len(tags))
	for i, tag := range tags {
		hashtags[i] = "#" + tag
	}

	combined := text + "\n\n" + strings.Join(hashtags, " ")
	if utf8.RuneCountInString(combined) > domain.MaxConfessionLength {
		combined = string([]rune(combined)[:domain.MaxConfessionLength])
	}
	return combined
}
