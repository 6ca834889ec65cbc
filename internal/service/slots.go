package service

import "github.com/pranav-ms/uni-records-api/internal/models"

// slotSessions maps each weekly slot code to its fixed meeting pattern. It
// is static configuration loaded once at process start; treat as immutable.
var slotSessions = map[string][]models.SlotSession{
	"A1": {
		{Day: "Monday", Time: "08:00 AM - 08:50 AM"},
		{Day: "Wednesday", Time: "09:00 AM - 09:50 AM"},
	},
	"A2": {
		{Day: "Monday", Time: "02:00 PM - 02:50 PM"},
		{Day: "Wednesday", Time: "03:00 PM - 03:50 PM"},
	},
	"B1": {
		{Day: "Tuesday", Time: "08:00 AM - 08:50 AM"},
		{Day: "Thursday", Time: "09:00 AM - 09:50 AM"},
	},
	"B2": {
		{Day: "Tuesday", Time: "02:00 PM - 02:50 PM"},
		{Day: "Thursday", Time: "03:00 PM - 03:50 PM"},
	},
	"C1": {
		{Day: "Wednesday", Time: "08:00 AM - 08:50 AM"},
		{Day: "Friday", Time: "09:00 AM - 09:50 AM"},
	},
	"C2": {
		{Day: "Wednesday", Time: "02:00 PM - 02:50 PM"},
		{Day: "Friday", Time: "03:00 PM - 03:50 PM"},
	},
	"D1": {
		{Day: "Thursday", Time: "08:00 AM - 08:50 AM"},
		{Day: "Monday", Time: "10:00 AM - 10:50 AM"},
	},
	"D2": {
		{Day: "Thursday", Time: "02:00 PM - 02:50 PM"},
		{Day: "Monday", Time: "04:00 PM - 04:50 PM"},
	},
	"E1": {
		{Day: "Friday", Time: "08:00 AM - 08:50 AM"},
		{Day: "Tuesday", Time: "10:00 AM - 10:50 AM"},
	},
	"E2": {
		{Day: "Friday", Time: "02:00 PM - 02:50 PM"},
		{Day: "Tuesday", Time: "04:00 PM - 04:50 PM"},
	},
	"F1": {
		{Day: "Monday", Time: "09:00 AM - 09:50 AM"},
		{Day: "Wednesday", Time: "10:00 AM - 10:50 AM"},
	},
	"F2": {
		{Day: "Monday", Time: "03:00 PM - 03:50 PM"},
		{Day: "Wednesday", Time: "04:00 PM - 04:50 PM"},
	},
	"G1": {
		{Day: "Tuesday", Time: "09:00 AM - 09:50 AM"},
		{Day: "Thursday", Time: "10:00 AM - 10:50 AM"},
	},
	"G2": {
		{Day: "Tuesday", Time: "03:00 PM - 03:50 PM"},
		{Day: "Thursday", Time: "04:00 PM - 04:50 PM"},
	},

	"TB1":  {{Day: "Monday", Time: "11:00 AM - 11:50 AM"}},
	"TG1":  {{Day: "Monday", Time: "12:00 PM - 12:50 PM"}},
	"TC1":  {{Day: "Tuesday", Time: "11:00 AM - 11:50 AM"}},
	"TAA1": {{Day: "Tuesday", Time: "12:00 PM - 12:50 PM"}},
	"V1":   {{Day: "Wednesday", Time: "11:00 AM - 11:50 AM"}},
	"V2":   {{Day: "Wednesday", Time: "12:00 PM - 12:50 PM"}},
	"TE1":  {{Day: "Thursday", Time: "11:00 AM - 11:50 AM"}},
	"TCC1": {{Day: "Thursday", Time: "12:00 PM - 12:50 PM"}},
	"TA1":  {{Day: "Friday", Time: "10:00 AM - 10:50 AM"}},
	"TF1":  {{Day: "Friday", Time: "11:00 AM - 11:50 AM"}},
	"TD1":  {{Day: "Friday", Time: "12:00 PM - 12:50 PM"}},
	"TB2":  {{Day: "Monday", Time: "05:00 PM - 05:50 PM"}},
	"TG2":  {{Day: "Monday", Time: "06:00 PM - 06:50 PM"}},
	"TC2":  {{Day: "Tuesday", Time: "05:00 PM - 05:50 PM"}},
	"TAA2": {{Day: "Tuesday", Time: "06:00 PM - 06:50 PM"}},
	"TD2":  {{Day: "Wednesday", Time: "05:00 PM - 05:50 PM"}},
	"TBB2": {{Day: "Wednesday", Time: "06:00 PM - 06:50 PM"}},
	"TE2":  {{Day: "Thursday", Time: "05:00 PM - 05:50 PM"}},
	"TCC2": {{Day: "Thursday", Time: "06:00 PM - 06:50 PM"}},
	"TA2":  {{Day: "Friday", Time: "04:00 PM - 04:50 PM"}},
	"TF2":  {{Day: "Friday", Time: "05:00 PM - 05:50 PM"}},
	"TDD2": {{Day: "Friday", Time: "06:00 PM - 06:50 PM"}},
	"V3":   {{Day: "Monday", Time: "07:00 PM - 07:50 PM"}},
	"V4":   {{Day: "Tuesday", Time: "07:00 PM - 07:50 PM"}},
	"V5":   {{Day: "Wednesday", Time: "07:00 PM - 07:50 PM"}},
	"V6":   {{Day: "Thursday", Time: "07:00 PM - 07:50 PM"}},
	"V7":   {{Day: "Friday", Time: "07:00 PM - 07:50 PM"}},

	"L1":  {{Day: "Monday", Time: "08:00 AM - 08:50 AM"}},
	"L2":  {{Day: "Monday", Time: "08:51 AM - 09:40 AM"}},
	"L3":  {{Day: "Monday", Time: "09:51 AM - 10:40 AM"}},
	"L4":  {{Day: "Monday", Time: "10:41 AM - 11:30 AM"}},
	"L5":  {{Day: "Monday", Time: "11:40 AM - 12:30 PM"}},
	"L6":  {{Day: "Monday", Time: "12:31 PM - 01:20 PM"}},
	"L31": {{Day: "Monday", Time: "02:00 PM - 02:50 PM"}},
	"L32": {{Day: "Monday", Time: "02:51 PM - 03:40 PM"}},
	"L33": {{Day: "Monday", Time: "03:51 PM - 04:40 PM"}},
	"L34": {{Day: "Monday", Time: "04:41 PM - 05:30 PM"}},
	"L35": {{Day: "Monday", Time: "05:40 PM - 06:30 PM"}},
	"L36": {{Day: "Monday", Time: "06:31 PM - 07:20 PM"}},
	"L7":  {{Day: "Tuesday", Time: "08:00 AM - 08:50 AM"}},
	"L8":  {{Day: "Tuesday", Time: "08:51 AM - 09:40 AM"}},
	"L9":  {{Day: "Tuesday", Time: "09:51 AM - 10:40 AM"}},
	"L10": {{Day: "Tuesday", Time: "10:41 AM - 11:30 AM"}},
	"L11": {{Day: "Tuesday", Time: "11:40 AM - 12:30 PM"}},
	"L12": {{Day: "Tuesday", Time: "12:31 PM - 01:20 PM"}},
	"L37": {{Day: "Tuesday", Time: "02:00 PM - 02:50 PM"}},
	"L38": {{Day: "Tuesday", Time: "02:51 PM - 03:40 PM"}},
	"L39": {{Day: "Tuesday", Time: "03:51 PM - 04:40 PM"}},
	"L40": {{Day: "Tuesday", Time: "04:41 PM - 05:30 PM"}},
	"L41": {{Day: "Tuesday", Time: "05:40 PM - 06:30 PM"}},
	"L42": {{Day: "Tuesday", Time: "06:31 PM - 07:20 PM"}},
	"L13": {{Day: "Wednesday", Time: "08:00 AM - 08:50 AM"}},
	"L14": {{Day: "Wednesday", Time: "08:51 AM - 09:40 AM"}},
	"L15": {{Day: "Wednesday", Time: "09:51 AM - 10:40 AM"}},
	"L16": {{Day: "Wednesday", Time: "10:41 AM - 11:30 AM"}},
	"L17": {{Day: "Wednesday", Time: "11:40 AM - 12:30 PM"}},
	"L18": {{Day: "Wednesday", Time: "12:31 PM - 01:20 PM"}},
	"L43": {{Day: "Wednesday", Time: "02:00 PM - 02:50 PM"}},
	"L44": {{Day: "Wednesday", Time: "02:51 PM - 03:40 PM"}},
	"L45": {{Day: "Wednesday", Time: "03:51 PM - 04:40 PM"}},
	"L46": {{Day: "Wednesday", Time: "04:41 PM - 05:30 PM"}},
	"L47": {{Day: "Wednesday", Time: "05:40 PM - 06:30 PM"}},
	"L48": {{Day: "Wednesday", Time: "06:31 PM - 07:20 PM"}},
	"L19": {{Day: "Thursday", Time: "08:00 AM - 08:50 AM"}},
	"L20": {{Day: "Thursday", Time: "08:51 AM - 09:40 AM"}},
	"L21": {{Day: "Thursday", Time: "09:51 AM - 10:40 AM"}},
	"L22": {{Day: "Thursday", Time: "10:41 AM - 11:30 AM"}},
	"L23": {{Day: "Thursday", Time: "11:40 AM - 12:30 PM"}},
	"L24": {{Day: "Thursday", Time: "12:31 PM - 01:20 PM"}},
	"L49": {{Day: "Thursday", Time: "02:00 PM - 02:50 PM"}},
	"L50": {{Day: "Thursday", Time: "02:51 PM - 03:40 PM"}},
	"L51": {{Day: "Thursday", Time: "03:51 PM - 04:40 PM"}},
	"L52": {{Day: "Thursday", Time: "04:41 PM - 05:30 PM"}},
	"L53": {{Day: "Thursday", Time: "05:40 PM - 06:30 PM"}},
	"L54": {{Day: "Thursday", Time: "06:31 PM - 07:20 PM"}},
	"L25": {{Day: "Friday", Time: "08:00 AM - 08:50 AM"}},
	"L26": {{Day: "Friday", Time: "08:51 AM - 09:40 AM"}},
	"L27": {{Day: "Friday", Time: "09:51 AM - 10:40 AM"}},
	"L28": {{Day: "Friday", Time: "10:41 AM - 11:30 AM"}},
	"L29": {{Day: "Friday", Time: "11:40 AM - 12:30 PM"}},
	"L30": {{Day: "Friday", Time: "12:31 PM - 01:20 PM"}},
	"L55": {{Day: "Friday", Time: "02:00 PM - 02:50 PM"}},
	"L56": {{Day: "Friday", Time: "02:51 PM - 03:40 PM"}},
	"L57": {{Day: "Friday", Time: "03:51 PM - 04:40 PM"}},
	"L58": {{Day: "Friday", Time: "04:41 PM - 05:30 PM"}},
	"L59": {{Day: "Friday", Time: "05:40 PM - 06:30 PM"}},
	"L60": {{Day: "Friday", Time: "06:31 PM - 07:20 PM"}},
}

// SlotSessions returns the weekly sessions for a slot code, nil when unknown.
func SlotSessions(code string) []models.SlotSession {
	return slotSessions[code]
}

// KnownSlot reports whether the slot code exists in the static table.
func KnownSlot(code string) bool {
	_, ok := slotSessions[code]
	return ok
}
