package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/yomogi/ghostboard/internal/domain"
)

type mockEventPublisher struct {
	events []domain.Event
}

func (m *mockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "strips hashes and truncates",
			in:   []string{"#Fun", " fun ", "toolongtagthatexceedsfifteenchars"},
			want: []string{"Fun", "fun", "toolongtagthate"},
		},
		{
			name: "caps at three tags",
			in:   []string{"a", "b", "c", "d"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "drops empty results but keeps duplicates",
			in:   []string{"#", "  ", "dup", "dup"},
			want: []string{"dup", "dup"},
		},
		{
			name: "nil input yields empty slice",
			in:   nil,
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeTags(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestSubmitRejectsOversizeText(t *testing.T) {
	gw := &mockFeedGateway{}
	uc := NewConfessionUsecase(&mockEngagementRepo{}, gw, &mockModeration{}, nil)

	_, err := uc.Submit(context.Background(), SubmitInput{
		Text: strings.Repeat("a", domain.MaxConfessionLength+1),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if len(gw.posted) != 0 {
		t.Fatalf("oversize text reached the remote service")
	}
}

func TestSubmitRejectsEmptyText(t *testing.T) {
	gw := &mockFeedGateway{}
	uc := NewConfessionUsecase(&mockEngagementRepo{}, gw, &mockModeration{}, nil)

	_, err := uc.Submit(context.Background(), SubmitInput{Text: "   \n\t "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if len(gw.posted) != 0 {
		t.Fatalf("empty text reached the remote service")
	}
}

func TestSubmitModerationBlocks(t *testing.T) {
	gw := &mockFeedGateway{}
	uc := NewConfessionUsecase(&mockEngagementRepo{}, gw, &mockModeration{matches: []string{"spam"}}, nil)

	_, err := uc.Submit(context.Background(), SubmitInput{Text: "some spam here"})

	var modErr domain.ModerationError
	if !errors.As(err, &modErr) {
		t.Fatalf("expected moderation error got %v", err)
	}
	if len(modErr.Matches) != 1 || modErr.Matches[0] != "spam" {
		t.Fatalf("unexpected matches %v", modErr.Matches)
	}
	if len(gw.posted) != 0 {
		t.Fatalf("moderated text reached the remote service")
	}
}

func TestSubmitAppendsHashtags(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockEngagementRepo{}
	gw := &mockFeedGateway{
		postResult: domain.RemoteStatus{ID: "status-1", Text: "hello world\n\n#fun #life", CreatedAt: created},
	}
	events := &mockEventPublisher{}
	uc := NewConfessionUsecase(repo, gw, &mockModeration{}, events)

	confession, err := uc.Submit(context.Background(), SubmitInput{
		Text:     "hello world",
		Tags:     []string{"#fun", "life"},
		AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if len(gw.posted) != 1 || gw.posted[0] != "hello world\n\n#fun #life" {
		t.Fatalf("unexpected outgoing text %q", gw.posted)
	}

	if confession.ID != "status-1" || !confession.CreatedAt.Equal(created) {
		t.Fatalf("remote identity not adopted: %+v", confession)
	}
	if !confession.AllowComments {
		t.Fatalf("comments should default to allowed")
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected seeded meta got %d", len(repo.saved))
	}
	if repo.saved[0].ID != "status-1" || !reflect.DeepEqual(repo.saved[0].Tags, []string{"fun", "life"}) {
		t.Fatalf("unexpected seeded meta %+v", repo.saved[0])
	}

	if len(events.events) != 1 || events.events[0].Type != domain.EventConfessionPosted {
		t.Fatalf("expected posted event, got %+v", events.events)
	}
}

func TestSubmitTruncatesCombinedText(t *testing.T) {
	gw := &mockFeedGateway{postResult: domain.RemoteStatus{ID: "status-2"}}
	uc := NewConfessionUsecase(&mockEngagementRepo{}, gw, &mockModeration{}, nil)

	text := strings.Repeat("x", domain.MaxConfessionLength-5)
	_, err := uc.Submit(context.Background(), SubmitInput{
		Text: text,
		Tags: []string{"longtag"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if len(gw.posted) != 1 {
		t.Fatalf("expected one post got %d", len(gw.posted))
	}
	if got := utf8.RuneCountInString(gw.posted[0]); got != domain.MaxConfessionLength {
		t.Fatalf("combined text not truncated to limit, got %d runes", got)
	}
	if !strings.HasPrefix(gw.posted[0], text) {
		t.Fatalf("truncation mangled the confession body")
	}
}

func TestSubmitHonorsAllowCommentsFlag(t *testing.T) {
	repo := &mockEngagementRepo{}
	gw := &mockFeedGateway{postResult: domain.RemoteStatus{ID: "status-3"}}
	uc := NewConfessionUsecase(repo, gw, &mockModeration{}, nil)

	disabled := false
	confession, err := uc.Submit(context.Background(), SubmitInput{
		Text:          "quiet one",
		AllowComments: &disabled,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if confession.AllowComments {
		t.Fatalf("allowComments=false was not honored")
	}
	if len(repo.saved) != 1 || repo.saved[0].AllowComments {
		t.Fatalf("seeded meta should persist allowComments=false: %+v", repo.saved)
	}
}

func TestSubmitWrapsRemoteFailure(t *testing.T) {
	gw := &mockFeedGateway{postErr: errors.New("upstream 502")}
	uc := NewConfessionUsecase(&mockEngagementRepo{}, gw, &mockModeration{}, nil)

	_, err := uc.Submit(context.Background(), SubmitInput{Text: "hello"})
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("expected RemoteUnavailable got %v", err)
	}
}
