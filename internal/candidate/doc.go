// Package candidate partitions one field mapping against one constructor and
// selects the best constructor among the alternatives.
package candidate
