// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

// Messages shared by more than one command.
const (
	MessageInvalidCommandFormat         = "Invalid command format! \n%s"
	MessageUnknownCommand               = "Unknown command"
	MessageInvalidIndex                 = "Index is not a non-zero unsigned integer."
	MessageInvalidPatientDisplayedIndex = "The patient index provided is invalid"
	MessageDuplicateFields              = "Multiple values specified for the following single-valued field(s): "
	MessageInvalidFieldContent          = "Invalid input! fields must contain only letters, numbers, spaces, commas, hyphens."
	MessagePersonNotFoundNric           = "Patient with NRIC %s not found"
	MessagePersonNotFoundIndex          = "Patient at index %d not found"
	MessagePatientsListedOverview       = "%d patients listed!"
)
