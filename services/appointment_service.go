package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vonvha/Nutri-Smart/models"
)

const AppointmentScheduled = "scheduled"

type AppointmentRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Time string `json:"time" binding:"required,datetime=15:04"`
	Type string `json:"type" binding:"required"`
}

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// Latest returns the most recently scheduled appointment, or nil.
func (s *AppointmentService) Latest(ctx context.Context, email string) (*AppointmentRequest, error) {
	var a models.Appointment
	err := s.db.WithContext(ctx).Where("user_email = ?", email).Order("id desc").First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &AppointmentRequest{Date: a.Date, Time: a.Time, Type: a.Type}, nil
}

func (s *AppointmentService) Schedule(ctx context.Context, email string, req AppointmentRequest) (*AppointmentRequest, error) {
	a := models.Appointment{
		UserEmail: email,
		Date:      req.Date,
		Time:      req.Time,
		Type:      req.Type,
		Status:    AppointmentScheduled,
	}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &req, nil
}
