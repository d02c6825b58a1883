package app

import "hospital_duty_kiosk/internal/domain/duty"

// sampleDuties is shown when neither the ministry nor a snapshot can provide data.
var sampleDuties = []duty.Record{
	{Name: "Γενικό Νοσοκομείο Αθηνών «Ιπποκράτειο»", Specialty: "Γενική Ιατρική / General Medicine", Address: "Βασ. Σοφίας 114, Αθήνα", Phone: "213 2088000", Area: "Κέντρο Αθήνας"},
	{Name: "Γενικό Νοσοκομείο Αθηνών «Λαϊκό»", Specialty: "Χειρουργική / Surgery", Address: "Αγίου Θωμά 17, Γουδή", Phone: "213 2061000", Area: "Γουδή"},
	{Name: "Γενικό Νοσοκομείο Αθηνών «Ο Ευαγγελισμός»", Specialty: "Καρδιολογία / Cardiology", Address: "Υψηλάντου 45-47, Αθήνα", Phone: "213 2041000", Area: "Κολωνάκι"},
	{Name: "Γενικό Νοσοκομείο Αθηνών «Αλεξάνδρα»", Specialty: "Μαιευτική - Γυναικολογία / Obstetrics - Gynecology", Address: "Βασ. Σοφίας 80, Αθήνα", Phone: "213 3162000", Area: "Κέντρο Αθήνας"},
	{Name: "Παίδων «Αγία Σοφία»", Specialty: "Παιδιατρική / Pediatrics", Address: "Θηβών & Παπαδιαμαντοπούλου, Γουδή", Phone: "213 2013000", Area: "Γουδή"},
	{Name: "Αττικό Νοσοκομείο", Specialty: "Ορθοπεδική / Orthopedics", Address: "Ρίμινι 1, Χαϊδάρι", Phone: "210 5831000", Area: "Χαϊδάρι"},
	{Name: "ΚΑΤ - Γενικό Νοσοκομείο Αττικής", Specialty: "Τραυματολογία / Trauma", Address: "Νίκης 2, Κηφισιά", Phone: "213 2086000", Area: "Κηφισιά"},
	{Name: "«Σωτηρία» - Νοσοκομείο Θώρακος Αθηνών", Specialty: "Πνευμονολογία / Pulmonology", Address: "Μεσογείων 152, Αθήνα", Phone: "213 2057000", Area: "Αμπελόκηποι"},
	{Name: "Ψυχιατρικό Νοσοκομείο Αττικής", Specialty: "Ψυχιατρική / Psychiatry", Address: "Ρίμινι & Χαϊδαρίου, Χαϊδάρι", Phone: "213 2047000", Area: "Χαϊδάρι"},
}

// SampleDuties returns the demonstration dataset stamped with date.
func SampleDuties(date duty.Date) []duty.Record {
	out := make([]duty.Record, len(sampleDuties))
	for i, r := range sampleDuties {
		r.Date = date
		out[i] = r
	}
	return out
}
