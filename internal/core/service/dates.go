package service

import "time"

// frDate renders t as the short French date (jj/mm/aaaa) used in exports.
func frDate(t time.Time) string {
	return t.Format("02/01/2006")
}
