package config

type (
	InternalConfig struct {
		App      App
		JWT      JWT
		Mailer   Mailer
		RabbitMQ AppRabbitMQ
	}

	App struct {
		Env                            string
		Port                           string
		Version                        string
		Address                        string
		Timezone                       string
		EndpointPrefix                 string
		MaxRequests                    int
		ShutdownTimeoutInSeconds       int
		MaxTimeRequestsPerSeconds      int
		RequestBodyLimitInMegabyte     int
		LoginSessionExpiredTimeInHours int
		LoginAttemptsPerMinute         int
		BookingDraftTTLInMinutes       int
		SlotLockTTLInSeconds           int
		PaymentProofMaxUploadSizeInMB  int64
		PresignedUrlExpiryTimeInHours  int
		NotificationSyncIntervalInMin  int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	Mailer struct {
		EmailSender string
	}

	AppRabbitMQ struct {
		MailerQueue string
	}
)
