package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	RegisterSuccess = "account created successfully"
	LoginSuccess    = "successfully login"
	LogoutSuccess   = "successfully logout"

	GetDoctorSuccess      = "get doctor successfully"
	GetDoctorsSuccess     = "get doctors successfully"
	UpdateScheduleSuccess = "schedule updated successfully"
	UpdateServicesSuccess = "services updated successfully"
	UpdateCouponsSuccess  = "coupons updated successfully"
	UpdateBankDataSuccess = "bank details updated successfully"

	GetAvailabilitySuccess = "get available slots successfully"

	BookingStartedSuccess   = "booking session started"
	BookingUpdatedSuccess   = "booking updated"
	BookingCommittedSuccess = "appointment booked successfully"
	BookingResetSuccess     = "booking session reset"
	CouponAppliedSuccess    = "coupon applied"
	CouponRemovedSuccess    = "coupon removed"

	GetAppointmentSuccess      = "get appointments successfully"
	ApprovePaymentSuccess      = "payment approved"
	MarkAttendanceSuccess      = "attendance updated"
	PatientConfirmationSuccess = "confirmation updated"
	ClinicalNotesSuccess       = "clinical notes saved"
	MessageAppendedSuccess     = "message sent"

	GetCommissionSuccess     = "get commission summary successfully"
	SellerPaymentSuccess     = "seller payment recorded"
	GetSellerPaymentsSuccess = "get seller payments successfully"

	GetNotificationsSuccess = "get notifications successfully"
	MarkAllReadSuccess      = "all notifications marked as read"

	CreateTicketSuccess = "support ticket created"
	GetTicketsSuccess   = "get support tickets successfully"
	ReplyTicketSuccess  = "reply added to ticket"

	UploadProofSuccess     = "payment proof uploaded"
	UploadMarketingSuccess = "marketing material uploaded"
	GetMarketingSuccess    = "get marketing materials successfully"

	GetSettingsSuccess    = "get settings successfully"
	UpdateSettingsSuccess = "settings updated successfully"

	DoctorPaymentSuccess     = "doctor payment submitted"
	ApproveDoctorPaySuccess  = "doctor payment approved"
	GetDoctorPaymentsSuccess = "get doctor payments successfully"
)
