package postgres

import "time"

type rawResponseInsertModel struct {
	Provider      string    `db:"provider"`
	Endpoint      string    `db:"endpoint"`
	RequestParams []byte    `db:"request_params"`
	ResponseBody  []byte    `db:"response_body"`
	ResponseHash  string    `db:"response_hash"`
	HTTPStatus    int       `db:"http_status"`
	OK            bool      `db:"ok"`
	ErrorMessage  *string   `db:"error_message"`
	FetchedAt     time.Time `db:"fetched_at"`
}

type rawResponseTableModel struct {
	ID            int64     `db:"id"`
	Provider      string    `db:"provider"`
	Endpoint      string    `db:"endpoint"`
	RequestParams []byte    `db:"request_params"`
	ResponseBody  []byte    `db:"response_body"`
	ResponseHash  string    `db:"response_hash"`
	HTTPStatus    int       `db:"http_status"`
	OK            bool      `db:"ok"`
	ErrorMessage  *string   `db:"error_message"`
	FetchedAt     time.Time `db:"fetched_at"`
}
