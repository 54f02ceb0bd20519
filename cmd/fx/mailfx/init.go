package mailfx

import (
	"os"
	"strconv"

	"go.uber.org/fx"

	"storengine/internal/repositories"
	"storengine/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(users repositories.IUserRepository) services.IMailService {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	cfg := services.SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       os.Getenv("SMTP_FROM"),
		ReplyTo:    os.Getenv("SMTP_REPLY_TO"),
		UseSSL:     port == 465,
		RequireTLS: true,
	}

	return services.NewSMTPMailService(cfg, users)
}
