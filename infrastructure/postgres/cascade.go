package postgres

import (
	"gorm.io/gorm"

	"kanban-api/domain/models"
)

// deleteTasks ลบ tasks และข้อมูลลูกทั้งหมด ต้องเรียกภายใน transaction
func deleteTasks(db *gorm.DB, taskIDs []uint) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := db.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignee{}).Error; err != nil {
		return err
	}
	if err := db.Where("task_id IN ?", taskIDs).Delete(&models.Subtask{}).Error; err != nil {
		return err
	}
	if err := db.Where("task_id IN ?", taskIDs).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}

// deleteColumns ลบ columns พร้อม tasks ภายใน
func deleteColumns(db *gorm.DB, columnIDs []uint) error {
	if len(columnIDs) == 0 {
		return nil
	}
	var taskIDs []uint
	if err := db.Model(&models.Task{}).Where("column_id IN ?", columnIDs).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := deleteTasks(db, taskIDs); err != nil {
		return err
	}
	return db.Where("id IN ?", columnIDs).Delete(&models.Column{}).Error
}

// reindex เขียน position 0..n-1 ตามลำดับของ ids
func reindex(db *gorm.DB, model any, ids []uint) error {
	for i, id := range ids {
		if err := db.Model(model).Where("id = ?", id).Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

// insertAt แทรก id ที่ position โดย clamp ให้อยู่ในช่วง [0, len(ids)]
func insertAt(ids []uint, id uint, position int) ([]uint, int) {
	if position < 0 {
		position = 0
	}
	if position > len(ids) {
		position = len(ids)
	}
	out := make([]uint, 0, len(ids)+1)
	out = append(out, ids[:position]...)
	out = append(out, id)
	out = append(out, ids[position:]...)
	return out, position
}
