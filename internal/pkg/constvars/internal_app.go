package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "SUMA_SVC_"
)

const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
	RoleSeller  = "seller"
)

// Mongo collection names. The store is document-oriented: every query is
// either a whole-collection fetch or an equality filter on one field.
const (
	MongoCollectionAccounts           = "accounts"
	MongoCollectionDoctors            = "doctors"
	MongoCollectionPatients           = "patients"
	MongoCollectionSellers            = "sellers"
	MongoCollectionAppointments       = "appointments"
	MongoCollectionSellerPayments     = "sellerPayments"
	MongoCollectionDoctorPayments     = "doctorPayments"
	MongoCollectionSupportTickets     = "supportTickets"
	MongoCollectionMarketingMaterials = "marketingMaterials"
	MongoCollectionNotifications      = "notifications"
	MongoCollectionSettings           = "settings"
)

// Appointment field vocabulary. Values are kept in Spanish to stay
// wire-compatible with the data SUMA's clients already persist.
const (
	PaymentStatusPending = "Pendiente"
	PaymentStatusPaid    = "Pagado"

	AttendancePending  = "Pendiente"
	AttendanceAttended = "Atendido"
	AttendanceNoShow   = "No Asistió"

	ConfirmationPending   = "Pendiente"
	ConfirmationConfirmed = "Confirmada"
	ConfirmationCancelled = "Cancelada"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"

	CouponScopeGeneral = "general"
)

const (
	MessageSenderPatient = "patient"
	MessageSenderDoctor  = "doctor"
)

// Booking workflow states. Transitions are linear with explicit back edges,
// enforced by the booking usecase.
const (
	BookingStateSelectDateTime = "selectDateTime"
	BookingStateSelectServices = "selectServices"
	BookingStateSelectPayment  = "selectPayment"
	BookingStateConfirmation   = "confirmation"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
)

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

// Layouts for the wall-clock strings stored on appointments and schedules.
const (
	DateLayout          = "2006-01-02"
	TimeOfDayLayout     = "15:04"
	CommissionPeriodFmt = "January 2006"
)

const (
	RedisSessionKeyFormat      = "session:%s"
	RedisBookingDraftKeyFormat = "booking_draft:%s"
	RedisSlotLockKeyFormat     = "slot_lock:%s:%s:%s"
)

const (
	MinioPaymentProofPrefix = "payment_proof"
	MinioMarketingPrefix    = "marketing"
)

const (
	MailerQueueName = "suma_mailer_queue"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
