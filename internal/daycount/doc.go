/*
Package daycount implements year-fraction conventions.

Every convention is a pure function of two calendar dates. Only the year,
month and day of each argument are used; clock time and location are
ignored. All conventions are antisymmetric, so f(a, b) == -f(b, a), and
f(a, a) == 0. They never fail.

  - Actual360: actual calendar days over 360.
  - Thirty360: 30/360 with the end-of-month and February adjustments.
  - Monthly:   whole calendar months as twelfths plus day-weighted stubs.
*/
package daycount
