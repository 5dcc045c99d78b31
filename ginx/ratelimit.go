/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ginx

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"dirpx.dev/denvelope/fault"
	"dirpx.dev/denvelope/httpx"
)

// RateLimit limits requests per client IP with an in-memory store. Callers
// over the limit get a rate_limited envelope with status 429 and a
// Retry-After header.
//
// The key is gin's ClientIP, so forwarded headers count only from the
// engine's trusted proxies.
func RateLimit(w httpx.Writer, rate limiter.Rate) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithKeyGetter(func(c *gin.Context) string { return c.ClientIP() }),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			w.WriteError(c.Writer, c.Request, fault.RateLimited("", untilReset(c)))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			w.WriteError(c.Writer, c.Request, err)
		}),
	)
}

// untilReset reads the reset time the limiter put in X-RateLimit-Reset.
func untilReset(c *gin.Context) time.Duration {
	reset, err := strconv.ParseInt(c.Writer.Header().Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return 0
	}
	return max(time.Until(time.Unix(reset, 0)), 0)
}
