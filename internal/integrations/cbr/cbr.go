package cbr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const rubleCode = "RUB"

// Rates maps an ISO currency code to its price in rubles for one unit
type Rates map[string]decimal.Decimal

// Convert expresses amount in currency from as currency to
func (r Rates) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return amount, nil
	}
	fromRate, ok := r[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s", from)
	}
	toRate, ok := r[to]
	if !ok || toRate.IsZero() {
		return decimal.Zero, fmt.Errorf("no rate for %s", to)
	}
	return amount.Mul(fromRate).Div(toRate), nil
}

// CBRClient fetches daily exchange rates from the Central Bank of Russia
type CBRClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewCBRClient initializes a new CBR client
func NewCBRClient(cfg *config.Config, log *logrus.Logger) *CBRClient {
	return &CBRClient{
		url: cfg.CBRURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildSOAPRequest creates a SOAP request for the rates on a date
func (c *CBRClient) buildSOAPRequest(on cashflow.Date) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<GetCursOnDate xmlns="http://web.cbr.ru/">
					<On_date>%s</On_date>
				</GetCursOnDate>
			</soap12:Body>
		</soap12:Envelope>`, on)
}

// sendRequest sends SOAP request to CBR
func (c *CBRClient) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/GetCursOnDate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("CBR XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse extracts per-unit ruble rates from a GetCursOnDate response
func (c *CBRClient) parseXMLResponse(rawBody []byte) (Rates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	entries := doc.FindElements("//ValuteCursOnDate")
	if len(entries) == 0 {
		return nil, fmt.Errorf("no exchange rate data found in XML")
	}

	rates := Rates{rubleCode: decimal.NewFromInt(1)}
	for _, entry := range entries {
		code := childText(entry, "VchCode")
		if code == "" {
			continue
		}
		curs, err := decimal.NewFromString(childText(entry, "Vcurs"))
		if err != nil {
			c.log.Warnf("Skipping rate for %s: bad Vcurs: %v", code, err)
			continue
		}
		nom, err := decimal.NewFromString(childText(entry, "Vnom"))
		if err != nil || !nom.IsPositive() {
			nom = decimal.NewFromInt(1)
		}
		rates[strings.ToUpper(code)] = curs.Div(nom)
	}
	return rates, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.FindElement("./" + tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// GetRates retrieves the official rates for a date
func (c *CBRClient) GetRates(ctx context.Context, on cashflow.Date) (Rates, error) {
	body, err := c.sendRequest(ctx, c.buildSOAPRequest(on))
	if err != nil {
		return nil, err
	}
	rates, err := c.parseXMLResponse(body)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Retrieved %d exchange rates for %s", len(rates)-1, on)
	return rates, nil
}
