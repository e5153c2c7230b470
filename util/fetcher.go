// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/peerbridge/peerbridge/fault"
)

// maximum response body accepted from a remote service
const maximumResponseSize = 16 * 1024 * 1024

// FetchJSON - fetch a JSON response from an HTTP GET request and
// decode it
func FetchJSON(ctx context.Context, client *http.Client, url string, reply interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ErrNetworkFailure, err)
	}
	request.Header.Set("Accept", "application/json")
	return exchange(client, request, reply)
}

// PostJSON - send a JSON body with an HTTP POST request and decode
// the JSON response
func PostJSON(ctx context.Context, client *http.Client, url string, body interface{}, reply interface{}) error {
	buffer, err := json.Marshal(body)
	if nil != err {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buffer))
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ErrNetworkFailure, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	return exchange(client, request, reply)
}

// perform the request and classify any failure as network, status,
// empty or decode
func exchange(client *http.Client, request *http.Request, reply interface{}) error {
	response, err := client.Do(request)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ErrNetworkFailure, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maximumResponseSize))
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ErrNetworkFailure, err)
	}

	if http.StatusOK != response.StatusCode {
		return fmt.Errorf("%w: status: %d %q on: %q", fault.ErrRequestRejected, response.StatusCode, response.Status, request.URL)
	}

	if 0 == len(bytes.TrimSpace(body)) {
		return fault.ErrEmptyResponse
	}

	err = json.Unmarshal(body, reply)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ErrDecodeFailure, err)
	}
	return nil
}
