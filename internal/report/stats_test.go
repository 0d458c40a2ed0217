package report

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"value", "count"})
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func expectCount(mock sqlmock.Sqlmock, table string, n int) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM " + table)).
		WillReturnRows(countRows(n))
}

func expectGroup(mock sqlmock.Sqlmock, table, column string, rows *sqlmock.Rows) {
	q := "SELECT COALESCE(" + column + ",''), COUNT(*) FROM " + table + " GROUP BY " + column
	mock.ExpectQuery(regexp.QuoteMeta(q)).WillReturnRows(rows)
}

func TestStudentStatisticsBuckets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectCount(mock, "students", 3)
	expectGroup(mock, "students", "status", bucketRows().AddRow("active", 2).AddRow("suspended", 1))
	expectGroup(mock, "students", "gender", bucketRows().AddRow("female", 1).AddRow("male", 2))

	st, err := NewStats(db).StudentStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, st.TotalStudents)
	assert.Equal(t, []StatBucket{{Value: "active", Count: 2}, {Value: "suspended", Count: 1}}, st.StudentsByStatus)
	assert.Equal(t, []StatBucket{{Value: "female", Count: 1}, {Value: "male", Count: 2}}, st.StudentsByGender)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// With no rooms at all, the capacity and occupancy sums are 0, never NULL
// scan failures, and bucket lists are empty but present.
func TestRoomStatisticsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectCount(mock, "rooms", 0)
	expectGroup(mock, "rooms", "status", bucketRows())
	expectGroup(mock, "rooms", "room_type", bucketRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(capacity),0), COALESCE(SUM(current_occupancy),0) FROM rooms")).
		WillReturnRows(sqlmock.NewRows([]string{"cap", "occ"}).AddRow(0, 0))

	st, err := NewStats(db).RoomStatistics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, st.TotalRooms)
	assert.Zero(t, st.TotalCapacity)
	assert.Zero(t, st.CurrentOccupancy)
	assert.NotNil(t, st.RoomsByStatus)
	assert.Empty(t, st.RoomsByStatus)
	assert.NotNil(t, st.RoomsByType)
	assert.Empty(t, st.RoomsByType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Revenue sums paid payments only; the status breakdown still carries
// pending and overdue rows.
func TestPaymentStatisticsRevenuePaidOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectCount(mock, "payments", 4)
	expectGroup(mock, "payments", "status",
		bucketRows().AddRow("paid", 2).AddRow("pending", 1).AddRow("overdue", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount),0) FROM payments WHERE status='paid'")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(700.50))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM payments WHERE status='overdue'")).
		WillReturnRows(countRows(1))

	st, err := NewStats(db).PaymentStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, st.TotalPayments)
	assert.Equal(t, 700.50, st.TotalRevenue)
	assert.Equal(t, 1, st.OverduePayments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardSnapshotFailFast(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).WillReturnError(boom)

	snap, err := NewStats(db).DashboardSnapshot(context.Background())

	require.Error(t, err)
	assert.Equal(t, DashboardSnapshot{}, snap, "a partial snapshot must never be returned")
}

func TestStatisticsErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("table gone")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM contracts")).WillReturnError(boom)

	_, err = NewStats(db).ContractStatistics(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "contract statistics")
}
