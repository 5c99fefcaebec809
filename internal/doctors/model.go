package doctors

// Doctor is a clinician from the external directory. Read-only from the
// conversation's perspective.
type Doctor struct {
	ID            string `bson:"_id" json:"_id"`
	Name          string `bson:"name" json:"name"`
	FirstName     string `bson:"firstName" json:"firstName"`
	LastName      string `bson:"lastName" json:"lastName"`
	Specialty     string `bson:"specialty" json:"specialty"`
	Qualification string `bson:"qualification" json:"qualification"`

	// Availability is the human-readable schedule shown in prompts.
	Availability string `bson:"availability" json:"availability"`

	// WorkStart/WorkEnd bound the slot-generation window, in
	// "h:mm AM/PM" form. Unparseable values degrade to the default slot
	// list downstream.
	WorkStart string `bson:"workStart" json:"work_start"`
	WorkEnd   string `bson:"workEnd" json:"work_end"`
}
