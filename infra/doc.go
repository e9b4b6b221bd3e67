// Package infra contains technical adapters such as metric exporters and
// holiday calendars. These packages should depend only on the interfaces
// defined in the core packages.
package infra
