/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package middleware

import (
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	xForwardedForHeader = "X-Forwarded-For"
	xRealIpHeader       = "X-Real-IP"
)

var internalPaths = map[string]bool{livenessPath: true, metricsPath: true, readinessPath: true}

// tracingResponseWriter wraps a regular ResponseWriter in order to store the HTTP status code
type tracingResponseWriter struct {
	http.ResponseWriter
	data       []byte
	statusCode int
}

func newTracingResponseWriter(w http.ResponseWriter) *tracingResponseWriter {
	return &tracingResponseWriter{w, []byte{}, http.StatusOK}
}

func (w *tracingResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *tracingResponseWriter) Write(data []byte) (n int, err error) {
	w.data = append(w.data, data...)
	return w.ResponseWriter.Write(data)
}

// TracingMiddleware logs every request, health checks and metric scrapes at debug
func TracingMiddleware(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		start := time.Now()
		path := request.URL.RequestURI()
		tracingResponseWriter := newTracingResponseWriter(responseWriter)

		inner.ServeHTTP(tracingResponseWriter, request)

		entry := log.WithFields(log.Fields{
			"client":   getClientIpAddress(request),
			"duration": time.Since(start),
			"status":   tracingResponseWriter.statusCode,
		})
		if internalPaths[request.URL.Path] {
			entry.Debugf("%s %s", request.Method, path)
		} else {
			entry.Infof("%s %s", request.Method, path)
		}
	})
}

func getClientIpAddress(r *http.Request) string {
	if ipAddress := r.Header.Get(xRealIpHeader); ipAddress != "" {
		return ipAddress
	}

	if ipAddress := r.Header.Get(xForwardedForHeader); ipAddress != "" {
		return ipAddress
	}

	ipAddress, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ipAddress
}
