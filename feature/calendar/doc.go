// Package calendar derives date-dimension attributes from calendar dates.
//
// Derive is pure and total for any valid time.Time: no I/O, no failure mode.
// The date key (YYYYMMDD as an integer) doubles as the date dimension's
// surrogate key, which is what makes date rows stable across reruns without
// a key map.
//
// Day-of-week numbering follows time.Weekday (0 = Sunday, 6 = Saturday);
// weekend means Saturday or Sunday.
package calendar
