package requests

type QueryParams struct {
	Page     int
	PageSize int
	Date     string
	Range    string
}
