// Copyright 2016-2020, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmdutil

import (
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaeger "github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/transport/zipkin"

	"github.com/pulumi/dynexpr/pkg/util/contract"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// TracingEndpoint is the Zipkin-compatible endpoint spans are reported to, or empty if tracing is off.
var TracingEndpoint string

// TracingRootSpan is the span that every span of this process descends from, if tracing is on.
var TracingRootSpan opentracing.Span

var traceCloser io.Closer

// IsTracingEnabled returns true if InitTracing was given an endpoint.
func IsTracingEnabled() bool {
	return TracingEndpoint != ""
}

// InitTracing installs a Jaeger tracer, reporting every span to endpoint over Zipkin's HTTP transport, as the global
// opentracing tracer.  An empty endpoint leaves the no-op tracer in place.  If rootSpanName is non-empty, a root span
// is started and published as TracingRootSpan.
func InitTracing(name, rootSpanName, endpoint string) error {
	if endpoint == "" {
		return nil
	}

	transport, err := zipkin.NewHTTPTransport(endpoint,
		zipkin.HTTPBatchSize(1),
		zipkin.HTTPLogger(jaeger.StdLogger))
	if err != nil {
		return errors.Wrapf(err, "creating a tracing transport for '%v'", endpoint)
	}
	tracer, closer := jaeger.NewTracer(name, jaeger.NewConstSampler(true), jaeger.NewRemoteReporter(transport))
	opentracing.SetGlobalTracer(tracer)
	TracingEndpoint, traceCloser = endpoint, closer
	logging.V(5).Infof("Tracing to %v", endpoint)

	if rootSpanName != "" {
		TracingRootSpan = tracer.StartSpan(rootSpanName)
	}
	return nil
}

// CloseTracing finishes the root span and flushes any spans not yet reported.
func CloseTracing() {
	if !IsTracingEnabled() {
		return
	}
	if TracingRootSpan != nil {
		TracingRootSpan.Finish()
	}
	contract.IgnoreClose(traceCloser)
}
