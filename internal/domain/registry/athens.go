// internal/domain/registry/athens.go
package registry

// AthensInstitutions lists the abbreviations used in the Attica duty tables.
var AthensInstitutions = []Institution{
	{"ΕΥΑΓΓΕΛΙΣΜΟΣ", "Γενικό Νοσοκομείο Αθηνών «Ο Ευαγγελισμός»"},
	{"ΛΑΪΚΟ", "Γενικό Νοσοκομείο Αθηνών «Λαϊκό»"},
	{"ΕΛΠΙΣ", "Γενικό Νοσοκομείο Αθηνών «Ελπίς»"},
	{"ΑΓ. ΑΝΑΡΓΥΡΟΙ", "Γενικό Οικουμενικό Νοσοκομείο Κρατικό «Άγιοι Ανάργυροι»"},
	{"ΣΙΣΜΑΝΟΓΛΕΙΟ", "Γενικό Νοσοκομείο Αθηνών «Σισμανόγλειο»"},
	{"ΠΑΜΜΑΚΑΡΙΣΤΟΣ", "Γενικό Νοσοκομείο Αθηνών «Παμμακάριστος»"},
	{"ΑΤΤΙΚΟΝ", "Πανεπιστημιακό Γενικό Νοσοκομείο «Αττικόν»"},
	{"ΚΑΤ", "Γενικό Νοσοκομείο Αθηνών «ΚΑΤ»"},
	{"ΑΣΚΛΗΠΙΕΙΟ", "Γενικό Νοσοκομείο «Ασκληπιείο» Βούλας"},
	{"ΚΩΝ/ΠΟΥΛΕΙΟ", "Γενικό Νοσοκομείο Νέας Ιωνίας «Κωνσταντοπούλειο»"},
	{"ΠΕΙΡΑΙΑΣ", "Γενικό Νοσοκομείο Πειραιώς «Τζάνειο»"},
	{"ΑΛΕΞΑΝΔΡΑ", "Γενικό Νοσοκομείο Αθηνών «Αλεξάνδρα»"},
	{"ΑΡΕΤΑΙΕΙΟ", "Γενικό Νοσοκομείο Αθηνών «Αρεταίειο»"},
	{"ΕΛ. ΒΕΝΙΖΕΛΟΥ", "Γενικό Μαιευτικό «Ελένα Βενιζέλου»"},
	{"ΠΕΝΤΕΛΗΣ", "Γενικό Νοσοκομείο Παίδων «Πεντέλης»"},
	{"ΑΓΛ. ΚΥΡΙΑΚΟΥ", "Γενικό Νοσοκομείο Παίδων Αττικής «Αγλαΐα Κυριακού»"},
	{"ΣΩΤΗΡΙΑ", "Νοσοκομείο Θώρακος Αθηνών «Σωτηρία»"},
	{"ΙΠΠΟΚΡΑΤΕΙΟ", "Γενικό Νοσοκομείο Αθηνών «Ιπποκράτειο»"},
	{"ΔΡΟΜΟΚΑΪΤΕΙΟ", "Ψυχιατρικό Νοσοκομείο Αττικής «Δρομοκαΐτειο»"},
	{"Α. ΣΥΓΓΡΟΣ", "Νοσηλευτικό Δερματολογικό Νοσοκομείο Αθηνών «Ανδρέας Συγγρός»"},
	{"ΟΦΘΑΛΜΙΑΤΡΕΙΟ", "Νοσηλευτικό Οφθαλμιατρείο Αθηνών"},
	{"ΑΓ. ΣΑΒΒΑΣ", "Αντικαρκινικό-Ογκολογικό Νοσοκομείο Αθηνών «Άγιος Σάββας»"},
	{"Γ. ΓΕΝΝΗΜΑΤΑΣ", "Γενικό Νοσοκομείο Αθηνών «Γεώργιος Γεννηματάς»"},
	{"ΚΟΡΓ. ΜΠΕΝ. ΕΕΣ", "Γενικό Νοσοκομείο Αθηνών «Κοργιαλένειο-Μπενάκειο Ε.Ε.Σ.»"},
}

// AthensSpecialties maps the clinic labels of the duty tables to bilingual names.
var AthensSpecialties = []Specialty{
	{"Παθολογική", "Παθολογία / Internal Medicine"},
	{"Καρδιολογική", "Καρδιολογία / Cardiology"},
	{"Χειρουργική", "Χειρουργική / Surgery"},
	{"Αγγειοχειρ/κή", "Αγγειοχειρουργική / Vascular Surgery"},
	{"Αιματολογική", "Αιματολογία / Hematology"},
	{"Γαστρεντερ/γική", "Γαστρεντερολογία / Gastroenterology"},
	{"Γναθοχειρουργική", "Γναθοχειρουργική / Maxillofacial Surgery"},
	{"Δερματολογική", "Δερματολογία / Dermatology"},
	{"Ενδοκρινολογική", "Ενδοκρινολογία / Endocrinology"},
	{"Θωρακοχειρ/γική", "Θωρακοχειρουργική / Thoracic Surgery"},
	{"Καρδιοχειρ/κή", "Καρδιοχειρουργική / Cardiac Surgery"},
	{"Νευρολογική", "Νευρολογία / Neurology"},
	{"Νευροχειρουργική", "Νευροχειρουργική / Neurosurgery"},
	{"Νεφρολογική", "Νεφρολογία / Nephrology"},
	{"Ογκολογική", "Ογκολογία / Oncology"},
	{"Οδοντιατρική", "Οδοντιατρική / Dentistry"},
	{"Ορθοπαιδική", "Ορθοπεδική / Orthopedics"},
	{"Ουρολογική", "Ουρολογία / Urology"},
	{"Οφθαλμολογική", "Οφθαλμολογία / Ophthalmology"},
	{"Πνευμονολογική", "Πνευμονολογία / Pulmonology"},
	{"Πλαστ. Χειρουργική", "Πλαστική Χειρουργική / Plastic Surgery"},
	{"Ρευματολογική", "Ρευματολογία / Rheumatology"},
	{"Ψυχιατρική", "Ψυχιατρική / Psychiatry"},
	{"Ω.Ρ.Λ.", "Ωτορινολαρυγγολογία / ENT"},
	{"Γυναικολογική", "Γυναικολογία / Gynecology"},
	{"Μαιευτική", "Μαιευτική / Obstetrics"},
	{"Παιδιατρικό", "Παιδιατρική / Pediatrics"},
	{"Παιδοψυχιατρική", "Παιδοψυχιατρική / Child Psychiatry"},
}

// AthensDirectory carries the contact details known for the larger hospitals.
var AthensDirectory = map[string]Contact{
	"Γενικό Νοσοκομείο Αθηνών «Ιπποκράτειο»":     {Address: "Βασ. Σοφίας 114, Αθήνα", Phone: "213 2088000", Area: "Κέντρο Αθήνας"},
	"Γενικό Νοσοκομείο Αθηνών «Λαϊκό»":           {Address: "Αγίου Θωμά 17, Γουδή", Phone: "213 2061000", Area: "Γουδή"},
	"Γενικό Νοσοκομείο Αθηνών «Ο Ευαγγελισμός»":  {Address: "Υψηλάντου 45-47, Αθήνα", Phone: "213 2041000", Area: "Κολωνάκι"},
	"Γενικό Νοσοκομείο Αθηνών «Αλεξάνδρα»":       {Address: "Βασ. Σοφίας 80, Αθήνα", Phone: "213 3162000", Area: "Κέντρο Αθήνας"},
	"Πανεπιστημιακό Γενικό Νοσοκομείο «Αττικόν»": {Address: "Ρίμινι 1, Χαϊδάρι", Phone: "210 5831000", Area: "Χαϊδάρι"},
	"Γενικό Νοσοκομείο Αθηνών «ΚΑΤ»":             {Address: "Νίκης 2, Κηφισιά", Phone: "213 2086000", Area: "Κηφισιά"},
	"Νοσοκομείο Θώρακος Αθηνών «Σωτηρία»":        {Address: "Μεσογείων 152, Αθήνα", Phone: "213 2057000", Area: "Αμπελόκηποι"},
}

// Default returns the Athens registry. Longer abbreviations are tried first so
// that a short abbreviation never shadows a longer one that contains it.
func Default() *Registry {
	return New(LongestFirst(AthensInstitutions), AthensSpecialties, WithDirectory(AthensDirectory))
}
