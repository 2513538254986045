// Package notifications delivers sync lifecycle alerts through ntfy. When no
// topic is configured the service degrades to a noop so callers never guard
// their notification calls.
package notifications
