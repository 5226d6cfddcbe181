package anim

// A CrossFade is an Animation that hands visibility off between two
// subjects: the primary fades out at the negated rate, then the secondary is
// revealed and fades in to the target at the original rate. The handoff is
// two sequential single-channel fades with a visibility toggle in between.
type CrossFade struct {
	primary   *Subject
	secondary *Subject
	fadeTo    float64
	step      float64
	swapped   bool
}

// NewCrossFade creates an instance of a CrossFade object. The rate is given
// as the positive fade-in step; the fade-out phase negates it.
func NewCrossFade(primary, secondary *Subject, fadeTo, step float64) *CrossFade {
	c := new(CrossFade)
	c.primary = primary
	c.secondary = secondary
	c.fadeTo = fadeTo
	c.step = step
	return c
}

func (c *CrossFade) Kind() Kind {
	return KindCrossFade
}

func (c *CrossFade) Subjects() []*Subject {
	return []*Subject{c.primary, c.secondary}
}

// Step fades the primary out, swaps the internal binding exactly once on
// the frame its opacity reaches zero, then fades the new primary in.
func (c *CrossFade) Step() (bool, error) {
	if !c.swapped {
		out, err := stepChannel(&c.primary.Opacity, 0, -c.step)
		if err != nil {
			return false, err
		}
		if out {
			c.primary.Visible = false
			c.secondary.Visible = true
			c.primary, c.secondary = c.secondary, c.primary
			c.swapped = true
		}
		return false, nil
	}

	return stepChannel(&c.primary.Opacity, c.fadeTo, c.step)
}
