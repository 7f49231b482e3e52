package constvars

const (
	RegexContainAtLeastOneSpecialChar = `[!@#\$%\^&\*\(\)_\+\-=\[\]\{\};':"\\|,.<>\/?]`
	RegexContainAtLeastOneUppercase   = `[A-Z]`
	RegexTimeOfDay                    = `^([01]\d|2[0-3]):[0-5]\d$`
	RegexCalendarDate                 = `^\d{4}-\d{2}-\d{2}$`
)
