package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"prodlog/internal/storage"
)

// IDParam читает id из url параметра chi. ok == false, если это не положительное целое,
// такой id не может существовать и вызывающий отвечает 404.
func IDParam(r *http.Request, name string) (id int64, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseTime принимает RFC3339 или просто дату YYYY-MM-DD (UTC полночь)
func ParseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

// noUser - id, который хранилища никогда не выдают (счетчики начинаются с 1)
const noUser int64 = 0

// EntryFilterFromQuery собирает фильтр записей из query: userId, process, station, startDate, endDate.
// Запрос никогда не отклоняется: нечисловой userId не совпадает ни с одной записью,
// нераспознанные даты игнорируются.
func EntryFilterFromQuery(q url.Values) storage.EntryFilter {
	var f storage.EntryFilter

	if raw := q.Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			id = noUser
		}
		f.UserID = &id
	}

	f.Process = q.Get("process")
	f.Station = q.Get("station")

	if raw := q.Get("startDate"); raw != "" {
		if t, err := ParseTime(raw); err == nil {
			f.StartDate = &t
		}
	}

	if raw := q.Get("endDate"); raw != "" {
		if t, err := ParseTime(raw); err == nil {
			f.EndDate = &t
		}
	}

	return f
}
