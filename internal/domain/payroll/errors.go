package payroll

import "errors"

var (
	ErrInvalidPeriod            = errors.New("payroll period must be a month in years 2000-2100")
	ErrEmployeeRecordIncomplete = errors.New("employee record is missing name, position or base salary")
)
