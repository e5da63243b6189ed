// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides configurability for Prometheus-based metrics.  The more general go-kit interfaces
are used where possible, so that components only depend upon provider.Provider.

Components describe the metrics they need with a Module, and a Registry preregisters the merged set
of metrics so that labels, buckets, and help text are consistent.
*/
package xmetrics
