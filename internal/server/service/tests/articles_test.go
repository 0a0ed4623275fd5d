package tests

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/models"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/service"
	svcmocks "github.com/jotvibfeng/development-platforms-ca/internal/server/service/mocks"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

func newArticlesService(t *testing.T) (*service.ArticlesService, *svcmocks.MockArticlesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	articles := svcmocks.NewMockArticlesRepo(ctrl)
	return service.NewArticlesService(articles), articles
}

// Автор берётся из токена
func TestArticlesService_Create_AuthorFromToken(t *testing.T) {
	t.Parallel()

	svc, articles := newArticlesService(t)

	articles.EXPECT().
		Create(gomock.Any(), "title", "body", "tech", int64(7)).
		Return(int64(1), nil)

	id, err := svc.Create(context.Background(), 7, "title", "body", "tech", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
}

// submitted_by совпадает с токеном — допустимо
func TestArticlesService_Create_MatchingSubmittedBy(t *testing.T) {
	t.Parallel()

	svc, articles := newArticlesService(t)

	articles.EXPECT().
		Create(gomock.Any(), "title", "body", "tech", int64(7)).
		Return(int64(2), nil)

	id, err := svc.Create(context.Background(), 7, "title", "body", "tech", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 2 {
		t.Fatalf("expected id 2, got %d", id)
	}
}

// Публикация от чужого имени запрещена
func TestArticlesService_Create_ForeignSubmittedBy(t *testing.T) {
	t.Parallel()

	svc, _ := newArticlesService(t)

	_, err := svc.Create(context.Background(), 7, "title", "body", "tech", 99)
	if !errors.Is(err, serr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestArticlesService_Create_EmptyFields(t *testing.T) {
	t.Parallel()

	svc, _ := newArticlesService(t)

	cases := []struct {
		title, body, category string
	}{
		{"", "body", "tech"},
		{"title", "", "tech"},
		{"title", "body", ""},
		{"   ", "body", "tech"},
	}

	for _, c := range cases {
		_, err := svc.Create(context.Background(), 7, c.title, c.body, c.category, 0)
		if !errors.Is(err, serr.ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", c, err)
		}
	}
}

func TestArticlesService_List_OK(t *testing.T) {
	t.Parallel()

	svc, articles := newArticlesService(t)

	want := []models.ArticleWithAuthor{
		{Article: models.Article{ID: 1, Title: "first", SubmittedBy: 1}, Email: "a@b.com"},
	}

	articles.EXPECT().
		ListWithAuthors(gomock.Any()).
		Return(want, nil)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Email != "a@b.com" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
