package services

import (
	"context"

	"storengine/internal/models/db_models"
	"storengine/internal/models/request_models"
	"storengine/internal/repositories"
	"storengine/pkg/utils"
)

type IAccountService interface {
	// Register creates a customer account and fires the new-user automation.
	Register(ctx context.Context, req request_models.SignUpRequest) (*db_models.ShopUser, error)

	// RecordQuiz stores a submitted quiz and fires the quiz automation.
	RecordQuiz(ctx context.Context, req request_models.QuizRecordRequest) (*db_models.QuizRecord, error)
}

type AccountService struct {
	users       repositories.IUserRepository
	automations IAutomationService
}

func NewAccountService(users repositories.IUserRepository, automations IAutomationService) IAccountService {
	return &AccountService{users: users, automations: automations}
}

func (s *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*db_models.ShopUser, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &db_models.ShopUser{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.automations.OnUserCreated(ctx, user)
	return user, nil
}

func (s *AccountService) RecordQuiz(ctx context.Context, req request_models.QuizRecordRequest) (*db_models.QuizRecord, error) {
	record := &db_models.QuizRecord{
		Email:   req.Email,
		Answers: []byte(req.Answers),
	}
	if len(record.Answers) == 0 {
		record.Answers = []byte("{}")
	}
	if err := s.users.CreateQuizRecord(ctx, record); err != nil {
		return nil, err
	}

	s.automations.OnQuizRecordCreated(ctx, record)
	return record, nil
}
