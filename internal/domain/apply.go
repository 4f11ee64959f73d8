package domain

import "github.com/gridbugs/gws/internal/core/types"

// ApplyKind - чем закончилось успешно применённое действие.
type ApplyKind uint8

const (
	ApplyDone ApplyKind = iota
	ApplyAnimation
	ApplyInteract
)

// AnimationKind - вид косметической анимации, запускаемой действием.
type AnimationKind uint8

const (
	AnimationDamage AnimationKind = iota
	AnimationBlink
	AnimationProjectile
	AnimationGlowFade
)

func (k AnimationKind) String() string {
	switch k {
	case AnimationDamage:
		return "DAMAGE"
	case AnimationBlink:
		return "BLINK"
	case AnimationProjectile:
		return "PROJECTILE"
	case AnimationGlowFade:
		return "GLOW_FADE"
	default:
		return "UNKNOWN"
	}
}

// AnimationSpec - описание анимации. Таймеры ведёт движок.
type AnimationSpec struct {
	Kind      AnimationKind
	Entity    types.EntityID
	Coord     Coord
	Direction CardinalDirection
	Frames    uint32 // Длина анимации в кадрах (снаряд: дальность, свечение: кадры затухания)
}

// ApplyAction - результат успешного действия.
type ApplyAction struct {
	Kind      ApplyKind
	Animation *AnimationSpec
	Target    types.EntityID // Для ApplyInteract
}

// Done - действие применено без последствий во времени.
func Done() ApplyAction {
	return ApplyAction{Kind: ApplyDone}
}

func Animate(spec AnimationSpec) ApplyAction {
	return ApplyAction{Kind: ApplyAnimation, Animation: &spec}
}

func Interact(id types.EntityID) ApplyAction {
	return ApplyAction{Kind: ApplyInteract, Target: id}
}
