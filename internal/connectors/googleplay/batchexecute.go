package googleplay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// rpcURL is the Play frontend's RPC endpoint; reviewsRPCID selects the
// reviews method.
const (
	rpcURL       = "https://play.google.com/_/PlayStoreUi/data/batchexecute"
	reviewsRPCID = "UsvDTd"

	// sortNewest is the reviews sort constant for most-recent-first.
	sortNewest = 2

	// pageSize is the review count requested per RPC call.
	pageSize = 199
)

// review is one parsed review from the positional response arrays.
type review struct {
	ID       string
	UserName string
	Rating   int
	Text     string
	At       time.Time
}

// fetchReviews performs one reviews RPC call and returns the parsed
// reviews plus the pagination token ("" when exhausted).
func fetchReviews(ctx context.Context, client *http.Client, base, appID, lang, country, token string) ([]review, string, error) {
	body, err := json.Marshal([]any{nil, nil,
		[]any{2, sortNewest, []any{pageSize, nil, emptyToNil(token)}, nil, []any{}},
		[]any{appID, 7},
	})
	if err != nil {
		return nil, "", fmt.Errorf("encoding rpc payload: %w", err)
	}

	freq, err := json.Marshal([]any{[]any{[]any{reviewsRPCID, string(body), nil, "generic"}}})
	if err != nil {
		return nil, "", fmt.Errorf("encoding rpc envelope: %w", err)
	}

	form := url.Values{"f.req": {string(freq)}}
	endpoint := fmt.Sprintf("%s?hl=%s&gl=%s", base, url.QueryEscape(lang), url.QueryEscape(country))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("play rpc error (status %d)", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	return parseReviewsResponse(raw)
}

func emptyToNil(token string) any {
	if token == "" {
		return nil
	}
	return token
}

// parseReviewsResponse unwraps the batchexecute envelope: an anti-JSON
// prefix line, then a JSON array whose wrb.fr row carries the method's
// payload as a JSON string.
func parseReviewsResponse(raw []byte) ([]review, string, error) {
	text := string(raw)
	if i := strings.Index(text, "\n"); i >= 0 && strings.HasPrefix(text, ")]}'") {
		text = text[i+1:]
	}

	var envelope [][]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &envelope); err != nil {
		return nil, "", fmt.Errorf("decoding rpc envelope: %w", err)
	}

	payload := ""
	for _, row := range envelope {
		if len(row) >= 3 && asString(row[0]) == "wrb.fr" && asString(row[1]) == reviewsRPCID {
			payload = asString(row[2])
			break
		}
	}
	if payload == "" {
		return nil, "", fmt.Errorf("rpc response carries no %s payload", reviewsRPCID)
	}

	var inner []any
	if err := json.Unmarshal([]byte(payload), &inner); err != nil {
		return nil, "", fmt.Errorf("decoding reviews payload: %w", err)
	}
	if len(inner) == 0 {
		return nil, "", nil
	}

	rows, _ := inner[0].([]any)
	reviews := make([]review, 0, len(rows))
	for _, r := range rows {
		if parsed, ok := parseReviewRow(r); ok {
			reviews = append(reviews, parsed)
		}
	}

	// inner[1] is [_, nextToken] when more pages exist.
	token := ""
	if len(inner) > 1 {
		if pag, ok := inner[1].([]any); ok && len(pag) > 1 {
			token = asString(pag[1])
		}
	}
	return reviews, token, nil
}

// parseReviewRow decodes one positional review array: [0] review ID,
// [1][0] user name, [2] rating, [4] text, [5][0] epoch seconds.
func parseReviewRow(r any) (review, bool) {
	row, ok := r.([]any)
	if !ok || len(row) < 6 {
		return review{}, false
	}

	parsed := review{
		ID:     asString(at(row, 0)),
		Rating: int(asFloat(at(row, 2))),
		Text:   asString(at(row, 4)),
	}
	if parsed.ID == "" {
		return review{}, false
	}

	if user, ok := at(row, 1).([]any); ok && len(user) > 0 {
		parsed.UserName = asString(user[0])
	}
	if ts, ok := at(row, 5).([]any); ok && len(ts) > 0 {
		parsed.At = time.Unix(int64(asFloat(ts[0])), 0).UTC()
	}
	return parsed, true
}

func at(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}
