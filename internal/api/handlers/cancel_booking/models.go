package cancel_booking

// CancelBookingRequest тело запроса на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}
