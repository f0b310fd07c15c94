package ecs

import "reflect"

// AddComponent 以泛型方式为实体添加组件
//
// 示例:
//
//	ecs.AddComponent(em, petID, &components.PoseComponent{})
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// GetComponent 以泛型方式获取实体组件，类型不匹配或不存在时返回零值和 false
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 以泛型方式检查实体是否拥有组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	var zero T
	return em.HasComponent(id, reflect.TypeOf(zero))
}

// RemoveComponent 以泛型方式移除实体组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	var zero T
	em.RemoveComponent(id, reflect.TypeOf(zero))
}

// GetEntitiesWith1 查询拥有一种组件的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	var c1 T1
	return em.GetEntitiesWith(reflect.TypeOf(c1))
}

// GetEntitiesWith2 查询同时拥有两种组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var c1 T1
	var c2 T2
	return em.GetEntitiesWith(reflect.TypeOf(c1), reflect.TypeOf(c2))
}
