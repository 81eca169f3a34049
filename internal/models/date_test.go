package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"bookshelf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := models.NewDate(1965, time.August, 1)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1965-08-01"`, string(out))

	var parsed models.Date
	require.NoError(t, json.Unmarshal([]byte(`"2001-12-31"`), &parsed))
	assert.Equal(t, "2001-12-31", parsed.String())

	assert.Error(t, json.Unmarshal([]byte(`"31/12/2001"`), &parsed))
}

func TestDateAbsentInPayload(t *testing.T) {
	var in models.BookCreate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dune","author":"Herbert"}`), &in))
	assert.Nil(t, in.PublicationDate)

	// JSON null counts as absent, matching the update merge semantics.
	var upd models.BookUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"publication_date":null}`), &upd))
	assert.Nil(t, upd.PublicationDate)
}

func TestDateScan(t *testing.T) {
	var d models.Date
	require.NoError(t, d.Scan("1965-08-01"))
	assert.Equal(t, "1965-08-01", d.String())

	require.NoError(t, d.Scan(time.Date(2001, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2001-12-31", d.String())

	require.NoError(t, d.Scan([]byte("1999-01-02")))
	assert.Equal(t, "1999-01-02", d.String())

	assert.Error(t, d.Scan(42))
}

func TestBookUpdateApply(t *testing.T) {
	isbn := "9780441013593"
	date := models.NewDate(1965, time.August, 1)
	book := models.Book{
		ID:              1,
		Title:           "Dune",
		Author:          "Herbert",
		PublicationDate: &date,
		ISBN:            &isbn,
		UserID:          3,
	}

	author := "F. Herbert"
	models.BookUpdate{Author: &author}.Apply(&book)

	assert.Equal(t, "F. Herbert", book.Author)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, isbn, *book.ISBN)
	assert.Equal(t, "1965-08-01", book.PublicationDate.String())
	assert.EqualValues(t, 3, book.UserID)
}
