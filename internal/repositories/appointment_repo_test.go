package repositories

import (
	"context"
	"testing"
	"time"

	"schedulerapi/internal/common"
	"schedulerapi/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var appointmentColumns = []string{"id", "user_id", "supplier_id", "date", "time", "status", "notes", "created_at"}

type AppointmentRepoTestSuite struct {
	suite.Suite
	mock          pgxmock.PgxPoolIface
	repo          AppointmentRepository
	userID        uuid.UUID
	supplierID    uuid.UUID
	appointmentID uuid.UUID
	context       context.Context
}

func (suite *AppointmentRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewAppointmentRepository(mock)
	suite.userID = uuid.New()
	suite.supplierID = uuid.New()
	suite.appointmentID = uuid.New()
	suite.context = context.Background()
}

func (suite *AppointmentRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestAppointmentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AppointmentRepoTestSuite))
}

func (suite *AppointmentRepoTestSuite) appointmentRow() *pgxmock.Rows {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(appointmentColumns).
		AddRow(suite.appointmentID, suite.userID, suite.supplierID, date, "14:30", models.StatusPending, "brake check", time.Now())
}

func (suite *AppointmentRepoTestSuite) TestCreate_Success() {
	appointment := &models.Appointment{
		ID:         suite.appointmentID,
		UserID:     suite.userID,
		SupplierID: suite.supplierID,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:       "14:30",
		Status:     models.StatusPending,
		Notes:      "brake check",
	}

	suite.mock.ExpectExec(`INSERT INTO appointments`).
		WithArgs(appointment.ID, appointment.UserID, appointment.SupplierID, appointment.Date, appointment.Time, appointment.Status, appointment.Notes).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, appointment)
	assert.NoError(suite.T(), err)
}

func (suite *AppointmentRepoTestSuite) TestGetByID_Success() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM appointments`).
		WithArgs(suite.appointmentID).
		WillReturnRows(suite.appointmentRow())

	appointment, err := suite.repo.GetByID(suite.context, suite.appointmentID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.appointmentID, appointment.ID)
	assert.Equal(suite.T(), "14:30", appointment.Time)
	assert.Equal(suite.T(), models.StatusPending, appointment.Status)
}

func (suite *AppointmentRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM appointments`).
		WithArgs(suite.appointmentID).
		WillReturnError(pgx.ErrNoRows)

	appointment, err := suite.repo.GetByID(suite.context, suite.appointmentID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), appointment)
}

func (suite *AppointmentRepoTestSuite) TestListForUser() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM appointments`).
		WithArgs(suite.userID).
		WillReturnRows(suite.appointmentRow())

	appointments, err := suite.repo.ListForUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), appointments, 1)
	assert.Equal(suite.T(), suite.userID, appointments[0].UserID)
}

func (suite *AppointmentRepoTestSuite) TestListForSupplier() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM appointments`).
		WithArgs(suite.supplierID).
		WillReturnRows(suite.appointmentRow())

	appointments, err := suite.repo.ListForSupplier(suite.context, suite.supplierID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), appointments, 1)
	assert.Equal(suite.T(), suite.supplierID, appointments[0].SupplierID)
}

func (suite *AppointmentRepoTestSuite) TestListForUser_Empty() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM appointments`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows(appointmentColumns))

	appointments, err := suite.repo.ListForUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), appointments)
}

func (suite *AppointmentRepoTestSuite) TestUpdateStatus_Success() {
	suite.mock.ExpectExec(`UPDATE appointments SET status`).
		WithArgs(models.StatusScheduled, suite.appointmentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStatus(suite.context, suite.appointmentID, models.StatusScheduled)
	assert.NoError(suite.T(), err)
}

func (suite *AppointmentRepoTestSuite) TestUpdateStatus_NotFound() {
	suite.mock.ExpectExec(`UPDATE appointments SET status`).
		WithArgs(models.StatusScheduled, suite.appointmentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.UpdateStatus(suite.context, suite.appointmentID, models.StatusScheduled)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *AppointmentRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM appointments`).
		WithArgs(suite.appointmentID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.appointmentID)
	assert.NoError(suite.T(), err)
}

func (suite *AppointmentRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM appointments`).
		WithArgs(suite.appointmentID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.appointmentID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *AppointmentRepoTestSuite) TestDeleteCancelledBefore() {
	cutoff := time.Now().AddDate(0, 0, -90)

	suite.mock.ExpectExec(`DELETE FROM appointments WHERE status`).
		WithArgs(models.StatusCancelled, cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	deleted, err := suite.repo.DeleteCancelledBefore(suite.context, cutoff)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), deleted)
}
