package templates

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var templateRowColumns = []string{
	"id", "name", "template_type", "description", "preview_image", "css_styles", "layout_config",
	"ats_score", "is_premium", "created_at", "updated_at",
}

func TestPGRepoEnsureByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	catalogue, err := Catalogue()
	if err != nil {
		t.Fatalf("Catalogue: %v", err)
	}
	tpl := catalogue[0]
	tpl.ID = "tpl-1"

	mock.ExpectExec("INSERT INTO templates (.+) ON CONFLICT \\(name\\) DO NOTHING").
		WithArgs(
			tpl.ID,
			tpl.Name,
			tpl.TemplateType,
			tpl.Description,
			tpl.PreviewImage,
			sqlmock.AnyArg(), // css_styles
			sqlmock.AnyArg(), // layout_config
			tpl.ATSScore,
			tpl.IsPremium,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO templates").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	created, err := repo.EnsureByName(context.Background(), tpl)
	if err != nil || !created {
		t.Fatalf("first EnsureByName = %v, %v", created, err)
	}
	created, err = repo.EnsureByName(context.Background(), tpl)
	if err != nil || created {
		t.Fatalf("second EnsureByName = %v, %v", created, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesJSONB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows(templateRowColumns).AddRow(
		"tpl-1", "Tech Focus", "modern", "desc", "",
		[]byte(`{"fontFamily":"Helvetica","fontSize":"10.5px","lineHeight":1.4,"colors":{"accent":"#007BFF"}}`),
		[]byte(`{"layout":"single-column","sections_order":["skills","summary"],"show_photo":false}`),
		94, false, now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM templates WHERE id = \\$1").
		WithArgs("tpl-1").
		WillReturnRows(rows)

	tpl, err := (&PGRepo{DB: db}).GetByID(context.Background(), "tpl-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if tpl.CSSStyles.LineHeight.String() != "1.4" {
		t.Fatalf("expected numeric line height to decode, got %q", tpl.CSSStyles.LineHeight)
	}
	if got := tpl.LayoutConfig.Order(); len(got) != 2 || got[0] != "skills" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM templates").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	if _, err := (&PGRepo{DB: db}).GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows(templateRowColumns).
		AddRow("a", "A", "modern", "", "", []byte(`{}`), []byte(`{}`), 98, false, now, now).
		AddRow("b", "B", "minimal", "", "", []byte(`{}`), []byte(`{}`), 90, true, now, now)
	mock.ExpectQuery("SELECT (.+) FROM templates ORDER BY ats_score DESC").
		WillReturnRows(rows)

	items, err := (&PGRepo{DB: db}).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[1].IsPremium != true {
		t.Fatalf("unexpected items: %+v", items)
	}
}
