package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

var postCols = []string{
	"id", "technician_id", "customer_id", "booking_id", "raw_image_url", "enhanced_image_url",
	"generated_captions", "selected_caption", "ai_status", "style_tags", "created_at",
}

func postRow(id string, status model.AIStatus) *sqlmock.Rows {
	return sqlmock.NewRows(postCols).
		AddRow(id, "tech-1", nil, nil, "http://cdn/posts/tech-1/1_cut.jpg", "",
			"{}", "", string(status), "{}", time.Now().UTC())
}

func TestPostPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	post := &model.Post{
		ID:           "post-1",
		TechnicianID: "tech-1",
		RawImageURL:  "http://cdn/posts/tech-1/1_cut.jpg",
		AIStatus:     model.AIStatusProcessing,
		CreatedAt:    now,
	}

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs(post.ID, post.TechnicianID, nil, nil, post.RawImageURL, string(post.AIStatus), now).
		WillReturnRows(postRow("post-1", model.AIStatusProcessing))

	result, err := repo.Create(ctx, post)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "post-1", result.ID)
	assert.Equal(t, model.AIStatusProcessing, result.AIStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = ?").
			WithArgs("post-1").
			WillReturnRows(postRow("post-1", model.AIStatusGenerated))

		post, err := repo.FindByID(ctx, "post-1")

		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, "post-1", post.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		post, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, post)
	})
}

func TestPostPostgres_AttachGeneration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	captions := []string{"A cool haircut", "Varian 1", "Varian 2"}
	rows := sqlmock.NewRows(postCols).
		AddRow("post-1", "tech-1", nil, nil, "http://cdn/raw.jpg", "https://cdn/raw.jpg?enhance=ai",
			`{"A cool haircut","Varian 1","Varian 2"}`, "", "generated", "{}", time.Now().UTC())

	mock.ExpectQuery("UPDATE posts").
		WithArgs("post-1", "https://cdn/raw.jpg?enhance=ai", pq.StringArray(captions)).
		WillReturnRows(rows)

	post, err := repo.AttachGeneration(ctx, "post-1", "https://cdn/raw.jpg?enhance=ai", captions)

	assert.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, model.AIStatusGenerated, post.AIStatus)
	assert.Equal(t, captions, post.GeneratedCaptions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_Publish(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	t.Run("publishable row", func(t *testing.T) {
		rows := sqlmock.NewRows(postCols).
			AddRow("post-1", "tech-1", nil, nil, "http://cdn/raw.jpg", "https://cdn/raw.jpg?enhance=ai",
				"{A cool haircut}", "A cool haircut", "completed", "{}", time.Now().UTC())

		mock.ExpectQuery("UPDATE posts").
			WithArgs("post-1", "A cool haircut").
			WillReturnRows(rows)

		post, err := repo.Publish(ctx, "post-1", "A cool haircut")

		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, model.AIStatusCompleted, post.AIStatus)
		assert.Equal(t, "A cool haircut", post.SelectedCaption)
	})

	t.Run("row not in generated state", func(t *testing.T) {
		mock.ExpectQuery("UPDATE posts").
			WithArgs("post-1", "A cool haircut").
			WillReturnRows(sqlmock.NewRows(postCols))

		post, err := repo.Publish(ctx, "post-1", "A cool haircut")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, post)
	})
}

func TestPostPostgres_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)

	mock.ExpectExec("UPDATE posts SET ai_status = 'failed'").
		WithArgs("post-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkFailed(context.Background(), "post-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_ListCompletedByTechnician(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM posts").
		WithArgs("tech-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(postCols).
		AddRow("post-1", "tech-1", nil, nil, "http://cdn/raw.jpg", "https://cdn/raw.jpg?enhance=ai",
			"{A cool haircut}", "A cool haircut", "completed", "{fade}", time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE technician_id = (.+) ORDER BY").
		WithArgs("tech-1", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListCompletedByTechnician(ctx, "tech-1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, []string{"fade"}, res.Items[0].StyleTags)
	assert.NoError(t, mock.ExpectationsWereMet())
}
