package user

import "errors"

var (
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrEmployeeProfileRequired = errors.New("no employee profile linked to this account")
)
