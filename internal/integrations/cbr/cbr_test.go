package cbr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cursResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <GetCursOnDateResponse xmlns="http://web.cbr.ru/">
      <GetCursOnDateResult>
        <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <ValuteData xmlns="">
            <ValuteCursOnDate>
              <Vname>US Dollar</Vname>
              <Vnom>1</Vnom>
              <Vcurs>90.5000</Vcurs>
              <Vcode>840</Vcode>
              <VchCode>USD</VchCode>
            </ValuteCursOnDate>
            <ValuteCursOnDate>
              <Vname>Japanese Yen</Vname>
              <Vnom>100</Vnom>
              <Vcurs>60.0000</Vcurs>
              <Vcode>392</Vcode>
              <VchCode>JPY</VchCode>
            </ValuteCursOnDate>
            <ValuteCursOnDate>
              <Vname>Broken</Vname>
              <Vnom>1</Vnom>
              <Vcurs>n/a</Vcurs>
              <VchCode>XXX</VchCode>
            </ValuteCursOnDate>
          </ValuteData>
        </diffgr:diffgram>
      </GetCursOnDateResult>
    </GetCursOnDateResponse>
  </soap:Body>
</soap:Envelope>`

func newTestClient(url string) *CBRClient {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCBRClient(&config.Config{CBRURL: url}, log)
}

func TestGetRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "<On_date>2024-03-15</On_date>")
		assert.Equal(t, "http://web.cbr.ru/GetCursOnDate", r.Header.Get("SOAPAction"))
		w.Write([]byte(cursResponse))
	}))
	defer srv.Close()

	rates, err := newTestClient(srv.URL).GetRates(context.Background(), cashflow.Date{Year: 2024, Month: time.March, Day: 15})
	require.NoError(t, err)

	assert.Equal(t, "1", rates["RUB"].String())
	assert.Equal(t, "90.5", rates["USD"].String())
	assert.Equal(t, "0.6", rates["JPY"].String())
	assert.NotContains(t, rates, "XXX")
}

func TestGetRates_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetRates(context.Background(), cashflow.Date{Year: 2024, Month: time.March, Day: 15})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "503"))
}

func TestGetRates_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<Envelope><Body/></Envelope>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetRates(context.Background(), cashflow.Date{Year: 2024, Month: time.March, Day: 15})
	assert.Error(t, err)
}

func TestRatesConvert(t *testing.T) {
	rates := Rates{"RUB": decimal.NewFromInt(1), "USD": decimal.RequireFromString("90"), "EUR": decimal.RequireFromString("99")}

	got, err := rates.Convert(decimal.NewFromInt(10), "usd", "RUB")
	require.NoError(t, err)
	assert.Equal(t, "900", got.String())

	got, err = rates.Convert(decimal.NewFromInt(11), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "12.1", got.String())

	got, err = rates.Convert(decimal.NewFromInt(5), "GBP", "GBP")
	require.NoError(t, err)
	assert.Equal(t, "5", got.String())

	_, err = rates.Convert(decimal.NewFromInt(5), "GBP", "RUB")
	assert.Error(t, err)
}
