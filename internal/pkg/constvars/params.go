package constvars

const (
	URLParamDoctorID      = "doctorID"
	URLParamAppointmentID = "appointmentID"
	URLParamSellerID      = "sellerID"
	URLParamTicketID      = "ticketID"
	URLParamBookingID     = "bookingID"
	URLParamPaymentID     = "paymentID"
	URLParamMaterialID    = "materialID"

	QueryParamDate     = "date"
	QueryParamRange    = "range"
	QueryParamPage     = "page"
	QueryParamPageSize = "page_size"
)
