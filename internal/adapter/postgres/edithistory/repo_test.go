package edithistory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Microsecond)
	summary := "tightened the opening line"
	rec := &domain.EditHistoryRecord{
		ID:              uuid.New(),
		DraftID:         uuid.New(),
		OriginalContent: "Hello there, thanks!",
		EditedContent:   "Thanks so much!",
		EditType:        domain.EditTypeContentRevision,
		EditDistance:    14,
		ChangesSummary:  &summary,
		EditedByID:      uuid.New(),
		CreatedAt:       now,
	}

	mock := newMock(t)
	repo := New(mock)

	rows := pgxmock.NewRows(editColumns).AddRow(
		rec.ID, rec.DraftID, rec.OriginalContent, rec.EditedContent,
		string(rec.EditType), rec.EditDistance, summary, rec.EditedByID, now,
	)
	mock.ExpectQuery(`INSERT INTO draft_edit_history`).
		WithArgs(rec.ID, rec.DraftID, rec.OriginalContent, rec.EditedContent,
			rec.EditType, rec.EditDistance, rec.ChangesSummary, rec.EditedByID, now).
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	require.Equal(t, domain.EditTypeContentRevision, created.EditType)
	require.Equal(t, 14, created.EditDistance)
	require.NotNil(t, created.ChangesSummary)
	require.Equal(t, summary, *created.ChangesSummary)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListByDraft_NewestFirst(t *testing.T) {
	t.Parallel()

	draftID := uuid.New()
	editor := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock := newMock(t)
	repo := New(mock)

	rows := pgxmock.NewRows(editColumns).
		AddRow(uuid.New(), draftID, "b", "c", string(domain.EditTypeMinorTweak), 2, nil, editor, now).
		AddRow(uuid.New(), draftID, "a", "b", string(domain.EditTypeCompleteRewrite), 40, nil, editor, now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT .+ FROM draft_edit_history WHERE .+ ORDER BY created_at DESC`).
		WithArgs(draftID).
		WillReturnRows(rows)

	got, err := repo.ListByDraft(context.Background(), draftID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, domain.EditTypeMinorTweak, got[0].EditType)
	require.Nil(t, got[0].ChangesSummary)
}

func TestRepo_Stats(t *testing.T) {
	t.Parallel()

	workspaceID := uuid.New()
	mock := newMock(t)
	repo := New(mock)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT h\.draft_id\), COUNT\(\*\) FROM draft_edit_history h JOIN drafts d`).
		WithArgs(workspaceID).
		WillReturnRows(pgxmock.NewRows([]string{"drafts", "edits"}).AddRow(3, 7))

	draftsWithEdits, totalEdits, err := repo.Stats(context.Background(), workspaceID, domain.MetricsWindow{})
	require.NoError(t, err)
	require.Equal(t, 3, draftsWithEdits)
	require.Equal(t, 7, totalEdits)
}

func TestRepo_GroupByType(t *testing.T) {
	t.Parallel()

	workspaceID := uuid.New()
	mock := newMock(t)
	repo := New(mock)

	rows := pgxmock.NewRows([]string{"edit_type", "count", "avg"}).
		AddRow(string(domain.EditTypeMinorTweak), 5, 3.2).
		AddRow(string(domain.EditTypeToneAdjustment), 2, 11.5)
	mock.ExpectQuery(`GROUP BY h\.edit_type ORDER BY COUNT\(\*\) DESC`).
		WithArgs(workspaceID).
		WillReturnRows(rows)

	aggs, err := repo.GroupByType(context.Background(), workspaceID, domain.MetricsWindow{})
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	require.Equal(t, domain.EditTypeMinorTweak, aggs[0].EditType)
	require.Equal(t, 5, aggs[0].Count)
	require.InDelta(t, 11.5, aggs[1].AvgEditDistance, 1e-9)
}
