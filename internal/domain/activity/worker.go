package activity

type Skill string

const (
	SkillNone          Skill = ""
	SkillEVAOperations Skill = "eva_operations"
	SkillAreology      Skill = "areology"
	SkillResearch      Skill = "research"
)

type Attribute string

const (
	AttrExperienceAptitude Attribute = "experience_aptitude"
	AttrTeaching           Attribute = "teaching"
	AttrAcademicAptitude   Attribute = "academic_aptitude"
)

// Worker is the agent an activity runs for. Activities hold it by reference
// and never outlive its current-activity slot.
type Worker interface {
	ID() string
	Name() string
	// Performance is the worker's capacity in [0,1].
	Performance() float64
	SkillLevel(skill Skill) int
	RoleRelated(activityName string) bool
	AddStress(amount float64)
	Aptitude(attr Attribute) int
	AddExperience(skill Skill, points float64)
	ActivityEnded(name string)
}
