package activity

// ExperienceGain converts base experience points into the points credited to
// a learner. Aptitude 50 is neutral; every point above or below shifts the
// gain by one percent. teaching is the multiplier from TeachingModifier, or 1
// when nobody is teaching.
func ExperienceGain(base float64, aptitude int, teaching float64) float64 {
	if base <= 0 {
		return 0
	}
	if teaching <= 0 {
		teaching = 1
	}
	gain := base + base*float64(aptitude-50)/100
	return gain * teaching
}

// TeachingModifier is the multiplier a teacher adds on top of the learner's
// own gain.
func TeachingModifier(teacherTeaching, learnerAcademic int) float64 {
	return 1 + float64(teacherTeaching+learnerAcademic)/100
}
