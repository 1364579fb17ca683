package model

import "errors"

var ErrorCredentialsRequired = errors.New("email and password required")
var ErrorEmailRequired = errors.New("email required")
var ErrorFilterRequired = errors.New("activity name, skill level and gender required")
var ErrorDuplicateEmail = errors.New("account for email already exists")
var ErrorUserNotFound = errors.New("user not found")
var ErrorPasswordMismatch = errors.New("password does not match")
var ErrorMissingUser = errors.New("referenced user does not exist")
var ErrorNoMatches = errors.New("no matching users found")
var ErrorNoUsers = errors.New("no users found")
var ErrorInvalidToken = errors.New("invalid session token")
