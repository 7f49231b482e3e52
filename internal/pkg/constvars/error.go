package constvars

// Validation messages keyed by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email",
	"min":            "must be at least %s characters long",
	"max":            "maximum at %s characters long",
	"gt":             "must be greater than %s",
	"oneof":          "must be one of: %s",
	"time_of_day":    "must be a time in HH:MM format",
	"calendar_date":  "must be a date in YYYY-MM-DD format",
	"payment_method": "must be cash or bank_transfer",
	"password":       "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
}

// Tags whose validation message carries the tag parameter.
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientPasswordsDoNotMatch           = "passwords do not match"

	ErrClientDoctorNotFound         = "doctor not found"
	ErrClientAppointmentNotFound    = "appointment not found"
	ErrClientSlotNotAvailable       = "the selected time is no longer available"
	ErrClientSlotBeingBooked        = "the selected time is being booked, please retry"
	ErrClientBookingDraftNotFound   = "booking session not found or expired"
	ErrClientBookingStepNotAllowed  = "this booking step is not available yet"
	ErrClientBookingNeedsDateTime   = "select a date and time first"
	ErrClientBookingNeedsServices   = "select at least one service first"
	ErrClientBookingNeedsPayment    = "select a payment method first"
	ErrClientBookingNeedsBankProof  = "bank transfers need a bank account and a payment proof"
	ErrClientCouponNotFound         = "coupon code not found"
	ErrClientCouponAlreadyApplied   = "a coupon is already applied, remove it first"
	ErrClientAppointmentLocked      = "this appointment can no longer be modified"
	ErrClientConfirmationAlreadySet = "this appointment was already confirmed or cancelled"
	ErrClientNotesNeedAttended      = "clinical notes can only be written for attended appointments"
	ErrClientSellerNotFound         = "seller not found"
	ErrClientTicketNotFound         = "support ticket not found"
	ErrClientInvalidProofFile       = "payment proof file is invalid"
	ErrClientFileTooLarge           = "file exceeds the maximum allowed size"
	ErrClientTooManyLoginAttempts   = "too many attempts, try again later"
	ErrClientCityFeeNotConfigured   = "no subscription fee configured for this city"
	ErrClientMarketingAssetNotFound = "marketing material not found"
	ErrClientPaymentNotFound        = "payment record not found"
)

// Error messages for developers
const (
	ErrDevValidationFailed     = "request validation failed"
	ErrDevCannotParseJSON      = "cannot parse JSON"
	ErrDevCannotParseDate      = "cannot parse date"
	ErrDevCannotMarshalJSON    = "cannot marshal JSON"
	ErrDevFailedToHashPassword = "failed to hash password"
	ErrDevInvalidCredentials   = "invalid credentials"
	ErrDevEmailAlreadyExists   = "email already exists"
	ErrDevPasswordsDoNotMatch  = "passwords do not match"

	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalid          = "authorization token is invalid"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthSigningMethod         = "unexpected JWT signing method"
	ErrDevAuthInvalidSession        = "session not found in redis"
	ErrDevRoleNotAllowed            = "caller role is not allowed to perform this mutation"

	ErrDevMissingRequestID   = "request id not found in context"
	ErrDevMissingSessionData = "session data not found in context"

	ErrDevDBFailedToFindDocument     = "failed to find document from mongo"
	ErrDevDBFailedToInsertDocument   = "failed to insert document to mongo"
	ErrDevDBFailedToUpdateDocument   = "failed to update document in mongo"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document from mongo"
	ErrDevDBFailedToIterateDocuments = "failed to iterate mongo documents"
	ErrDevDBStringNotObjectID        = "string is not a valid mongo object id"

	ErrDevRedisGetData      = "failed to get data from redis"
	ErrDevRedisSetData      = "failed to set data to redis"
	ErrDevRedisDeleteData   = "failed to delete data from redis"
	ErrDevRedisStoreSession = "failed to store session in redis"
	ErrDevRedisAcquireLock  = "failed to acquire redis lock"
	ErrDevRedisReleaseLock  = "failed to release redis lock"

	ErrDevMinioFailedToCreateObject = "failed to create object to minio bucket %s"
	ErrDevMinioFailedToPresignURL   = "failed to presign object url from minio bucket %s"

	ErrDevRabbitMQPublish = "failed to publish message to rabbitmq queue %s"

	ErrDevBookingDraftNotFound   = "booking draft not found in redis"
	ErrDevBookingGuardViolated   = "booking transition guard violated"
	ErrDevSlotTaken              = "slot already booked for this doctor, date and time"
	ErrDevAppointmentLocked      = "appointment attendance already set, services and price are read-only"
	ErrDevNotesPrecondition      = "clinical notes require attendance == Atendido"
	ErrDevConfirmationFinalState = "patient confirmation already left Pendiente"
)
