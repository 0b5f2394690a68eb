package domain

import (
	"errors"
)

var (
	MessageSuccessAddRelation    = "recipe added to list"
	MessageSuccessRemoveRelation = "recipe removed from list"

	MessageFailedAddRelation    = "failed to add recipe to list"
	MessageFailedRemoveRelation = "failed to remove recipe from list"

	ErrAlreadyInList = errors.New("recipe already in list")
	ErrNotInList     = errors.New("recipe not in list")
)
